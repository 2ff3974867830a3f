package main

import (
	"bytes"
	"fmt"
	randv2 "math/rand/v2"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/tree"
)

const (
	kindAVL  = "avl"
	kindLLRB = "llrb"
	kindBST  = "bst"
)

var supportedKinds = []string{kindAVL, kindLLRB, kindBST}

type workloadConfig struct {
	keys        []int64
	removeRatio float64
	checkEvery  int
	seed        uint64
	withStats   bool
	printLimit  int
}

type workloadReport struct {
	kind    string
	length  int64
	height  int32
	elapsed time.Duration
	printed *bytes.Buffer
	err     error
}

func newTree(kind string, withStats bool) (tree.OrderedSet[int64], error) {
	opts := make([]tree.TreeOption[int64], 0, 1)
	if withStats {
		opts = append(opts, tree.WithTreeStats[int64]("xtree"))
	}
	switch kind {
	case kindAVL:
		return tree.NewAVLTree[int64](opts...), nil
	case kindLLRB:
		return tree.NewLLRBTree[int64](opts...), nil
	case kindBST:
		return tree.NewBSTree[int64](opts...), nil
	default:
	}
	return nil, infra.NewErrorStack(fmt.Sprintf("unknown tree kind %q", kind))
}

// generateKeys returns n distinct keys drawn from a seeded PCG source.
func generateKeys(n int, seed uint64) []int64 {
	rng := randv2.New(randv2.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	seen := make(map[int64]struct{}, n)
	keys := make([]int64, 0, n)
	for len(keys) < n {
		key := rng.Int64N(int64(n) * 16)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

type workload struct {
	cfg       workloadConfig
	set       tree.OrderedSet[int64]
	ref       map[int64]struct{}
	mutations int
}

func (w *workload) checkpoint() error {
	w.mutations++
	if w.cfg.checkEvery <= 0 || w.mutations%w.cfg.checkEvery != 0 {
		return nil
	}
	return w.validate()
}

func (w *workload) validate() error {
	if err := tree.Validate[int64](w.set); err != nil {
		return infra.WrapErrorStackWithMessage(err, fmt.Sprintf("after %d mutations", w.mutations))
	}
	if int64(len(w.ref)) != w.set.Len() {
		return infra.NewErrorStack(fmt.Sprintf("length %d, reference %d", w.set.Len(), len(w.ref)))
	}
	return nil
}

func (w *workload) insertAll() error {
	for _, key := range w.cfg.keys {
		if !w.set.Add(key) {
			return infra.NewErrorStack(fmt.Sprintf("add %d rejected", key))
		}
		w.ref[key] = struct{}{}
		if err := w.checkpoint(); err != nil {
			return err
		}
	}
	if len(w.cfg.keys) > 0 && w.set.Add(w.cfg.keys[0]) {
		return infra.NewErrorStack(fmt.Sprintf("duplicate add %d accepted", w.cfg.keys[0]))
	}
	return nil
}

func (w *workload) removeSome() error {
	victims := slices.Clone(w.cfg.keys)
	rng := randv2.New(randv2.NewPCG(w.cfg.seed, uint64(len(victims))))
	rng.Shuffle(len(victims), func(i, j int) {
		victims[i], victims[j] = victims[j], victims[i]
	})
	total := int(float64(len(victims)) * w.cfg.removeRatio)
	for _, key := range victims[:total] {
		if !w.set.Remove(key) {
			return infra.NewErrorStack(fmt.Sprintf("remove %d rejected", key))
		}
		delete(w.ref, key)
		if w.set.Remove(key) {
			return infra.NewErrorStack(fmt.Sprintf("remove %d twice accepted", key))
		}
		if err := w.checkpoint(); err != nil {
			return err
		}
	}
	return nil
}

func (w *workload) crossCheck() error {
	for _, key := range w.cfg.keys {
		_, expected := w.ref[key]
		if w.set.Contains(key) != expected {
			return infra.NewErrorStack(fmt.Sprintf("contains %d, expected %v", key, expected))
		}
	}
	if err := w.validate(); err != nil {
		return err
	}

	expected := lo.Keys(w.ref)
	slices.Sort(expected)
	it, err := w.set.Traverse(tree.InOrder)
	if err != nil {
		return infra.WrapErrorStackWithMessage(err, "in-order traverse")
	}
	for i := 0; ; i++ {
		ok, err := it.HasNext()
		if err != nil {
			return infra.WrapErrorStackWithMessage(err, "in-order traverse")
		}
		if !ok {
			if i != len(expected) {
				return infra.NewErrorStack(fmt.Sprintf("in-order traverse stopped at %d of %d", i, len(expected)))
			}
			return nil
		}
		key, err := it.Next()
		if err != nil {
			return infra.WrapErrorStackWithMessage(err, "in-order traverse")
		}
		if i >= len(expected) || key != expected[i] {
			return infra.NewErrorStack(fmt.Sprintf("in-order traverse key %d at %d", key, i))
		}
	}
}

// runWorkload owns the tree it builds, nothing else touches it.
func runWorkload(kind string, cfg workloadConfig) (report workloadReport) {
	report.kind = kind
	start := time.Now()
	defer func() {
		report.elapsed = time.Since(start)
	}()

	set, err := newTree(kind, cfg.withStats)
	if err != nil {
		report.err = err
		return report
	}
	w := &workload{
		cfg: cfg,
		set: set,
		ref: make(map[int64]struct{}, len(cfg.keys)),
	}
	for _, step := range []func() error{w.insertAll, w.removeSome, w.crossCheck} {
		if err = step(); err != nil {
			report.err = infra.WrapErrorStackWithMessage(err, kind)
			break
		}
	}

	report.length = set.Len()
	if h, ok := set.(interface{ Height() int32 }); ok {
		report.height = h.Height()
	}
	if cfg.printLimit > 0 && set.Len() <= int64(cfg.printLimit) {
		report.printed = &bytes.Buffer{}
		tree.Print[int64](report.printed, set.Root())
	}
	return report
}
