package recmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recbase/recmap/lib/recmap"
)

func TestTypedGetters(t *testing.T) {
	nested, err := recmap.Of("inner", int64(1))
	require.NoError(t, err)

	m, err := recmap.Of(
		"bool", true,
		"int", int64(42),
		"float", 2.5,
		"string", "text",
		"map", nested,
	)
	require.NoError(t, err)

	assert.Equal(t, true, m.GetBool("bool"))
	assert.Equal(t, int64(42), m.GetInt("int"))
	assert.Equal(t, 2.5, m.GetFloat("float"))
	assert.Equal(t, "text", m.GetString("string"))
	assert.Same(t, nested, m.GetMap("map"))

	// absent keys yield the zero-equivalent default
	assert.Equal(t, false, m.GetBool("missing"))
	assert.Equal(t, int64(0), m.GetInt("missing"))
	assert.Equal(t, float64(0), m.GetFloat("missing"))
	assert.Equal(t, "", m.GetString("missing"))
	assert.Nil(t, m.GetMap("missing"))

	// the Or variants yield the explicit default instead
	assert.Equal(t, true, m.GetBoolOr("missing", true))
	assert.Equal(t, int64(-1), m.GetIntOr("missing", -1))
	assert.Equal(t, -1.5, m.GetFloatOr("missing", -1.5))
	assert.Equal(t, "fallback", m.GetStringOr("missing", "fallback"))
	assert.Same(t, nested, m.GetMapOr("missing", nested))

	// kind mismatches behave exactly like absence
	assert.Equal(t, int64(-1), m.GetIntOr("string", -1))
	assert.Equal(t, "fallback", m.GetStringOr("int", "fallback"))

	// integers widen into the float getter
	assert.Equal(t, float64(42), m.GetFloat("int"))
}

func TestTypedPutters(t *testing.T) {
	m := recmap.New()
	_, err := m.PutBool("b", true)
	require.NoError(t, err)
	_, err = m.PutInt("i", 42)
	require.NoError(t, err)
	_, err = m.PutFloat("f", 2.5)
	require.NoError(t, err)
	_, err = m.PutString("s", "text")
	require.NoError(t, err)

	assert.Equal(t, true, m.GetBool("b"))
	assert.Equal(t, int64(42), m.GetInt("i"))
	assert.Equal(t, 2.5, m.GetFloat("f"))
	assert.Equal(t, "text", m.GetString("s"))
}

func TestCast(t *testing.T) {
	// nil passes through untouched
	cast, err := recmap.Cast(nil, recmap.KindInt)
	require.NoError(t, err)
	assert.Nil(t, cast)

	// matching kinds are returned unchanged
	cast, err = recmap.Cast(int64(1), recmap.KindInt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cast)

	// narrow numerics are widened before the kind check
	cast, err = recmap.Cast(int32(1), recmap.KindInt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cast)
	cast, err = recmap.Cast(float32(1.5), recmap.KindFloat)
	require.NoError(t, err)
	assert.Equal(t, 1.5, cast)

	// maps cast to maps by reference
	nested := recmap.New()
	cast, err = recmap.Cast(nested, recmap.KindMap)
	require.NoError(t, err)
	assert.Same(t, nested, cast)

	// cross-kind coercions are not implemented
	_, err = recmap.Cast("5", recmap.KindInt)
	assert.True(t, recmap.IsCastFailed(err))
	_, err = recmap.Cast(int64(5), recmap.KindFloat)
	assert.True(t, recmap.IsCastFailed(err))
	_, err = recmap.Cast(int64(5), recmap.KindString)
	assert.True(t, recmap.IsCastFailed(err))

	// the target must name a value kind
	_, err = recmap.Cast(int64(5), recmap.KindAbsent)
	assert.True(t, recmap.IsInvalidArgument(err))
	_, err = recmap.Cast(int64(5), recmap.Kind(99))
	assert.True(t, recmap.IsInvalidArgument(err))
}

func TestCastAndGetOrThrow(t *testing.T) {
	m, err := recmap.Of("int", int64(1), "string", "text")
	require.NoError(t, err)

	// an absent value short-circuits to nil
	v, err := m.CastAndGetOrThrow("missing", recmap.KindInt)
	require.NoError(t, err)
	assert.Nil(t, v)

	// a matching value is returned as is
	v, err = m.CastAndGetOrThrow("int", recmap.KindInt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	// a mismatch propagates as CastFailed and leaves the pair untouched
	_, err = m.CastAndGetOrThrow("string", recmap.KindInt)
	assert.True(t, recmap.IsCastFailed(err))
	assert.Equal(t, "text", m.GetString("string"))

	// reading a matching value works on a sealed map
	m.Seal()
	v, err = m.CastAndGetOrThrow("int", recmap.KindInt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	// a mismatch on a sealed map cannot write back
	_, err = m.CastAndGetOrThrow("string", recmap.KindInt)
	assert.True(t, recmap.IsReadOnly(err))
}

func TestCastAndGet(t *testing.T) {
	m, err := recmap.Of("int", int64(1), "string", "text")
	require.NoError(t, err)

	v, err := m.CastAndGet("int", recmap.KindInt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	// a failed coercion degrades the stored value to nil
	v, err = m.CastAndGet("string", recmap.KindInt)
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.True(t, m.ContainsKey("string"))
	assert.Nil(t, m.Get("string"))
}

func TestCastAndGetOrCreate(t *testing.T) {
	m, err := recmap.Of("int", int64(1), "string", "text")
	require.NoError(t, err)

	// a matching value is returned without any write
	v, err := m.CastAndGetOrCreate("int", recmap.KindInt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	// an absent value materializes a fresh default of the target kind
	v, err = m.CastAndGetOrCreate("nested", recmap.KindMap)
	require.NoError(t, err)
	created, ok := v.(*recmap.Map)
	require.True(t, ok)
	assert.Equal(t, 0, created.Size())
	// the created map is stored, a second call returns the same instance
	v, err = m.CastAndGetOrCreate("nested", recmap.KindMap)
	require.NoError(t, err)
	assert.Same(t, created, v)

	// a mismatched value is replaced by the default as well
	v, err = m.CastAndGetOrCreate("string", recmap.KindInt)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
	assert.Equal(t, int64(0), m.GetInt("string"))

	// only kinds without a default instance fail
	_, err = m.CastAndGetOrCreate("opaque", recmap.KindOpaque)
	assert.True(t, recmap.IsCastFailed(err))

	m.Seal()
	_, err = m.CastAndGetOrCreate("other", recmap.KindMap)
	assert.True(t, recmap.IsReadOnly(err))
}

func TestGetAndCast(t *testing.T) {
	m, err := recmap.Of("int", int64(1), "string", "text")
	require.NoError(t, err)

	assert.Equal(t, int64(1), m.GetAndCast("int", recmap.KindInt))
	// failures and absence collapse to nil, nothing is written back
	assert.Nil(t, m.GetAndCast("string", recmap.KindInt))
	assert.Nil(t, m.GetAndCast("missing", recmap.KindInt))
	assert.Equal(t, "text", m.GetString("string"))
}

func TestOfKinds(t *testing.T) {
	m, err := recmap.OfKinds(recmap.KindString, recmap.KindInt,
		"a", int64(1),
		"b", int32(2), // widened before the kind check
		nil, "skipped",
	)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Size())
	assert.Equal(t, int64(2), m.GetInt("b"))

	_, err = recmap.OfKinds(recmap.KindString, recmap.KindInt, "a", "not an int")
	assert.True(t, recmap.IsCastFailed(err))
	_, err = recmap.OfKinds(recmap.KindString, recmap.KindInt, int64(1), int64(2))
	assert.True(t, recmap.IsCastFailed(err))
	_, err = recmap.OfKinds(recmap.KindString, recmap.KindInt, "odd")
	assert.True(t, recmap.IsInvalidArgument(err))

	// KindAbsent disables the respective check
	m, err = recmap.OfKinds(recmap.KindAbsent, recmap.KindAbsent, int64(1), "anything")
	require.NoError(t, err)
	assert.Equal(t, "anything", m.GetString(int64(1)))
}
