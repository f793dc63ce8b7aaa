package recall

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// parallelFor 把 [0, n) 切成 workers 段并发执行 fn。
// 每个下标只被一个 goroutine 处理，fn 可以直接写结果切片的对应位置，无需加锁。
// workers <= 1 时在当前 goroutine 顺序执行。任一 fn 出错或 ctx 取消时提前返回。
func parallelFor(ctx context.Context, n, workers int, fn func(i int) error) error {
	if workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}
	if workers > n {
		workers = n
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for j := 0; j < workers; j++ {
		begin := n * j / workers
		end := n * (j + 1) / workers
		eg.Go(func() error {
			for i := begin; i < end; i++ {
				if err := egCtx.Err(); err != nil {
					return err
				}
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return eg.Wait()
}
