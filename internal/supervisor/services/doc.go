// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

/*
Package services adapts long-running components to suture.Service.

Each wrapper translates a component's own lifecycle into Serve(ctx) error:

  - HTTPServerService: ListenAndServe plus graceful Shutdown on cancellation
  - StartupImportService: one import of the configured export file
  - StoreGCService: periodic badger value log garbage collection

A wrapper returns ctx.Err() on shutdown, an error when the component failed
and should be restarted, or suture.ErrDoNotRestart when its work is done.
Wrappers implement fmt.Stringer so the supervisor's event log names them.
*/
package services
