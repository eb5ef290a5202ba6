package driver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"sharplint/internal/source"
)

// loaded: файл, прочитанный до параллельной части (FileSet не потокобезопасен).
type loaded struct {
	path string
	file *source.File
	err  error
}

func loadAll(fs *source.FileSet, paths []string) []loaded {
	out := make([]loaded, len(paths))
	ids := make([]source.FileID, len(paths))
	for i, path := range paths {
		out[i].path = path
		ids[i], out[i].err = fs.Load(path)
	}
	// указатели берём после загрузки всех файлов: Add может переаллоцировать срез
	for i := range out {
		if out[i].err == nil {
			out[i].file = fs.Get(ids[i])
		}
	}
	return out
}

// forEach runs fn for 0..n-1 on at most jobs goroutines. Results are
// stored by index by the callers, so no locking is needed.
func forEach(ctx context.Context, n, jobs int, fn func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range n {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i)
		})
	}
	return g.Wait()
}
