package thread

import "golang.org/x/sync/errgroup"

// SpawnAll spawns one thread per argument on l and stops at the first
// creation failure. The handles of the threads that did start are returned
// alongside that error, in argument order, and the caller still owns them.
//
// SpawnAll never joins on the caller's behalf: threads that rendezvous with
// one another (barrier participants, for instance) would block forever
// waiting for a peer that was never created.
func SpawnAll[A any, R any](l *Launcher, fn func(A) R, args []A) ([]*Handle[R], error) {
	handles := make([]*Handle[R], 0, len(args))
	for _, arg := range args {
		h, err := SpawnOn(l, fn, arg)
		if err != nil {
			return handles, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

// JoinAll joins every handle concurrently and returns the results in
// handle order. All handles are joined even when some fail; the first
// error is returned.
func JoinAll[R any](handles []*Handle[R]) ([]R, error) {
	results := make([]R, len(handles))

	var g errgroup.Group
	for i, h := range handles {
		g.Go(func() error {
			v, err := h.Join()
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
