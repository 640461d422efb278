// Package history tracks and persists the commits applied to a skeleton
// store.
//
// # Bookkeeping
//
// [History] records applied commit ids compactly: a body count covering
// ids 1 through Base, plus a sorted tail of ids that arrived after a gap.
// [History.AddTail] records one id and [History.SetBodyCount] closes a
// gap once the missing commits are in.
//
// # Stores
//
// A [Store] holds encoded commit files (see package delta) by id, with
// implementations for different backends:
//   - [MemoryStore]: in memory, for tests
//   - [FileStore]: one file per commit in a directory, for the CLI
//   - [MongoStore]: a MongoDB collection, for shared deployments
//
// Commits are immutable once stored; a second Put of the same id fails
// with [ErrExists]. [Rebuild] reconstructs the history of a store.
//
// # Usage
//
//	store, err := history.NewFileStore(dir)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	err = store.Range(ctx, 1, 0, func(id uint32, data []byte) error {
//	    info, d, err := delta.Unmarshal(data)
//	    if err != nil {
//	        return err
//	    }
//	    _, err = s.Commit(ctx, info, d)
//	    return err
//	})
package history
