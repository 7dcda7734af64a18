// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

/*
Package supervisor runs the long-lived services of viewstats under a suture v4
supervisor tree.

# Overview

Services are grouped into two layers so a failure in one does not restart the
other:

	RootSupervisor ("viewstats")
	├── DataSupervisor ("data-layer")
	│   ├── StoreGCService (if STORAGE_GC_INTERVAL > 0)
	│   └── StartupImportService (if IMPORT_AUTO_START)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. The startup import
finishes with suture.ErrDoNotRestart and is not run again.

Supervisor events (start, stop, panic, backoff) are logged through sutureslog
into the zerolog logger via logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddDataService(services.NewStoreGCService(st, cfg.Storage.GCInterval))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

See the services subpackage for the wrappers.
*/
package supervisor
