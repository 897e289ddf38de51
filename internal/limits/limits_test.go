package limits

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLimits_UnsetIsUnbounded tests that nil ceilings never fail.
func TestLimits_UnsetIsUnbounded(t *testing.T) {
	l := Unbounded()
	assert.NoError(t, l.CheckQueryLimit(1<<62))
	assert.NoError(t, l.CheckQueryVariables(1<<62))

	g := NewGuard(l, Stat{TriplesCount: 1 << 40})
	for i := 0; i < 100; i++ {
		require.NoError(t, g.Admit(1<<20))
	}
	assert.Equal(t, uint64(100), g.Admitted())
}

// TestLimits_QueryChecks tests the boundary of the query ceilings.
func TestLimits_QueryChecks(t *testing.T) {
	l := Limits{MaxQueryLimit: Uint(30), MaxQueryVariableCount: Uint(2)}

	assert.NoError(t, l.CheckQueryLimit(30))
	err := l.CheckQueryLimit(31)
	require.Error(t, err)
	assert.True(t, IsLimitExceeded(err, KindMaxQueryLimit))

	assert.NoError(t, l.CheckQueryVariables(2))
	err = l.CheckQueryVariables(3)
	var le *LimitExceededError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, KindMaxQueryVariableCount, le.Kind)
	assert.Equal(t, uint64(2), le.Ceiling)
}

// TestLimits_Ceiling tests lookup by kind.
func TestLimits_Ceiling(t *testing.T) {
	l := Limits{MaxByteSize: Uint(9)}

	v, ok := l.Ceiling(KindMaxByteSize)
	assert.True(t, ok)
	assert.Equal(t, uint64(9), v)

	_, ok = l.Ceiling(KindMaxTripleCount)
	assert.False(t, ok)

	assert.Panics(t, func() { l.Ceiling(Kind("bogus")) })
}

// TestGuard_EachCeiling tests that every insert ceiling is reported by kind.
func TestGuard_EachCeiling(t *testing.T) {
	tests := []struct {
		name    string
		limits  Limits
		stat    Stat
		sizes   []uint64
		kind    Kind
		ceiling uint64
	}{
		{"triple count", Limits{MaxTripleCount: Uint(3)}, Stat{TriplesCount: 2}, []uint64{1, 1}, KindMaxTripleCount, 3},
		{"triple byte size", Limits{MaxTripleByteSize: Uint(10)}, Stat{}, []uint64{10, 11}, KindMaxTripleByteSize, 10},
		{"total byte size", Limits{MaxByteSize: Uint(100)}, Stat{ByteSize: 90}, []uint64{5, 5, 1}, KindMaxByteSize, 100},
		{"batch byte size", Limits{MaxInsertDataByteSize: Uint(20)}, Stat{ByteSize: 1000}, []uint64{10, 10, 1}, KindMaxInsertDataByteSize, 20},
		{"batch triple count", Limits{MaxInsertDataTripleCount: Uint(2)}, Stat{TriplesCount: 50}, []uint64{1, 1, 1}, KindMaxInsertDataTripleCount, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGuard(tt.limits, tt.stat)
			last := len(tt.sizes) - 1
			for i, size := range tt.sizes[:last] {
				require.NoError(t, g.Admit(size), "triple %d", i)
			}

			before := g.Stat()
			err := g.Admit(tt.sizes[last])
			var le *LimitExceededError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.kind, le.Kind)
			assert.Equal(t, tt.ceiling, le.Ceiling)
			assert.Equal(t, before, g.Stat(), "failed admit must not move counters")
		})
	}
}

// TestGuard_CheckOrder tests that the store count is checked before sizes.
func TestGuard_CheckOrder(t *testing.T) {
	l := Limits{MaxTripleCount: Uint(0), MaxTripleByteSize: Uint(0)}
	err := NewGuard(l, Stat{}).Admit(5)
	assert.True(t, IsLimitExceeded(err, KindMaxTripleCount))
}

// TestGuard_ReachingCeilingSucceeds tests that N-1 to N is allowed.
func TestGuard_ReachingCeilingSucceeds(t *testing.T) {
	g := NewGuard(Limits{MaxTripleCount: Uint(40)}, Stat{TriplesCount: 39, ByteSize: 7})
	require.NoError(t, g.Admit(3))
	assert.Equal(t, Stat{TriplesCount: 40, ByteSize: 10}, g.Stat())
}

// TestLimitExceededError_Error tests error message formatting.
func TestLimitExceededError_Error(t *testing.T) {
	err := &LimitExceededError{Kind: KindMaxTripleCount, Ceiling: 30}
	assert.Equal(t, "limit exceeded: max_triple_count (30)", err.Error())

	wrapped := fmt.Errorf("insert: %w", err)
	assert.True(t, IsLimitExceeded(wrapped, ""))
	assert.False(t, IsLimitExceeded(wrapped, KindMaxByteSize))
}

// TestLimits_Set tests setting every ceiling by name.
func TestLimits_Set(t *testing.T) {
	var l Limits
	for i, kind := range Kinds {
		require.NoError(t, l.Set(kind, uint64(i+1)))
	}
	for i, kind := range Kinds {
		v, ok := l.Ceiling(kind)
		assert.True(t, ok)
		assert.Equal(t, uint64(i+1), v)
	}

	err := l.Set(Kind("max_everything"), 1)
	assert.ErrorIs(t, err, ErrUnknownKind)
}
