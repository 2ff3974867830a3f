package tree

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	TreeStatsName = "xtree/tree"
)

type direction uint8

const (
	leftward direction = iota
	rightward
)

var (
	directionAttrs = [...]metric.MeasurementOption{
		leftward: metric.WithAttributeSet(attribute.NewSet(
			attribute.String("xtree.direction", "left"),
		)),
		rightward: metric.WithAttributeSet(attribute.NewSet(
			attribute.String("xtree.direction", "right"),
		)),
	}
)

type treeStats struct {
	rotationCounter  int64
	colorFlipCounter int64
	borrowCounter    int64
	rotations        metric.Int64Counter
	colorFlips       metric.Int64Counter
	borrows          metric.Int64Counter
	keyCount         metric.Int64UpDownCounter
}

func (stats *treeStats) RecordRotation(dir direction) {
	if stats == nil {
		return
	}
	stats.rotationCounter++
	stats.rotations.Add(context.Background(), 1, directionAttrs[dir])
}

func (stats *treeStats) RecordColorFlip() {
	if stats == nil {
		return
	}
	stats.colorFlipCounter++
	stats.colorFlips.Add(context.Background(), 1)
}

// RecordBorrow counts the LLRB deletion moves (moveRedLeft/moveRedRight).
func (stats *treeStats) RecordBorrow(dir direction) {
	if stats == nil {
		return
	}
	stats.borrowCounter++
	stats.borrows.Add(context.Background(), 1, directionAttrs[dir])
}

func (stats *treeStats) RecordKeyCount(delta int64) {
	if stats == nil || delta == 0 {
		return
	}
	stats.keyCount.Add(context.Background(), delta)
}

func newTreeStats(kind, name string) *treeStats {
	meterName := fmt.Sprintf("%s/%s", TreeStatsName, kind)
	if len(name) > 0 {
		meterName = fmt.Sprintf("%s/%s", meterName, name)
	}
	meter := otel.Meter(meterName)
	return &treeStats{
		rotations: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.rotation.count",
			metric.WithDescription("The number of rotations applied while rebalancing."),
		)),
		colorFlips: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.color.flip.count",
			metric.WithDescription("The number of color flips applied to the red-black links."),
		)),
		borrows: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.borrow.count",
			metric.WithDescription("The number of red links moved down the search path while removing."),
		)),
		keyCount: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			"xtree.key.count",
			metric.WithDescription("The number of keys in the tree."),
		)),
	}
}
