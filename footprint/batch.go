package footprint

import (
	"context"

	"github.com/wgdzlh/orthowarp/log"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// 并发计算多张影像的覆盖范围，结果与names顺序一致；任一失败即取消其余任务
func (c *Computer) ComputeAll(ctx context.Context, names []string, workers int) (fps []Footprint, err error) {
	log.Info(c.logTag+"start compute footprints", zap.Int("cnt", len(names)), zap.Int("workers", workers))
	fps = make([]Footprint, len(names))
	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for i, name := range names {
		i, name := i, name
		eg.Go(func() (e error) {
			if e = ctx.Err(); e != nil {
				return
			}
			fps[i], e = c.FootprintOf(name)
			return
		})
	}
	if err = eg.Wait(); err != nil {
		log.Error(c.logTag+"compute footprints failed", zap.Error(err))
		fps = nil
		return
	}
	log.Info(c.logTag+"footprints computed", zap.Int("cnt", len(fps)))
	return
}

// 并发纠正多张影像，返回输出文件路径（与fps顺序一致）
func WarpAll(ctx context.Context, consumer GCPConsumer, fps []Footprint, workers int) (outs []string, err error) {
	outs = make([]string, len(fps))
	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for i := range fps {
		i := i
		eg.Go(func() (e error) {
			if e = ctx.Err(); e != nil {
				return
			}
			outs[i], e = consumer.Warp(fps[i].Name, fps[i])
			return
		})
	}
	if err = eg.Wait(); err != nil {
		outs = nil
	}
	return
}
