package logger

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// ratioSampler admits num out of every den calls to Allow. A zero ratio
// rejects everything, which disables sampled debug output entirely.
type ratioSampler struct {
	num atomic.Int64
	den atomic.Int64
	seq atomic.Int64
}

func newRatioSampler(num, den int) *ratioSampler {
	s := &ratioSampler{}
	s.Set(num, den)
	return s
}

func (s *ratioSampler) Set(num, den int) {
	s.num.Store(int64(num))
	s.den.Store(int64(den))
}

func (s *ratioSampler) Allow() bool {
	den := s.den.Load()
	num := s.num.Load()
	if den <= 0 || num <= 0 {
		return false
	}
	if num >= den {
		return true
	}
	n := s.seq.Add(1)
	return (n % den) < num
}

// parseRatioSpec parses specs such as "1/50", "1:100" or "off".
func parseRatioSpec(spec string) (int, int) {
	spec = strings.TrimSpace(strings.ToLower(spec))
	switch spec {
	case "", "default":
		return 1, 50
	case "off", "none", "0":
		return 0, 0
	case "all", "full", "1":
		return 1, 1
	}
	sep := strings.IndexAny(spec, "/:")
	if sep <= 0 || sep == len(spec)-1 {
		return 1, 50
	}
	num, err1 := strconv.Atoi(strings.TrimSpace(spec[:sep]))
	den, err2 := strconv.Atoi(strings.TrimSpace(spec[sep+1:]))
	if err1 != nil || err2 != nil {
		return 1, 50
	}
	return num, den
}
