// Package journal records reconciliation run history in MySQL.
//
// Every push run writes one row summarizing what happened: how many records
// were created, updated, skipped, and how many batches failed. The journal
// is an optional sidecar; a missing or unreachable database degrades to a
// warning and never blocks a run.
//
// # Usage
//
//	db, err := journal.Connect(cfg.Journal)
//	if err == nil {
//	    rec := journal.NewRecorder(db)
//	    run := journal.NewRun("push", "./staged")
//	    // ... after the run ...
//	    err = rec.Record(ctx, run)
//	}
package journal
