package golembase_test

import (
	"testing"

	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/golembase"

	"github.com/stretchr/testify/assert"
)

func TestEq(t *testing.T) {
	assert.Equal(t, `_sys_file_name = "logo.png"`,
		golembase.Eq("_sys_file_name", "logo.png").String())
}

func TestEqInt(t *testing.T) {
	assert.Equal(t, "_sys_version = 1", golembase.EqInt("_sys_version", 1).String())
	assert.Equal(t, "_sys_file_size = -5", golembase.EqInt("_sys_file_size", -5).String())
}

func TestMatch(t *testing.T) {
	t.Run("CaseClasses", func(t *testing.T) {
		assert.Equal(t, `name ~ "*[Nn][Ff][Tt]*"`, golembase.Match("name", "nft").String())
	})

	t.Run("CaselessRunesPassThrough", func(t *testing.T) {
		assert.Equal(t, `name ~ "*[Aa]1[Bb]*"`, golembase.Match("name", "a1b").String())
	})
}

func TestAnd(t *testing.T) {
	a := golembase.Eq("x", "1")
	b := golembase.Eq("y", "2")

	t.Run("Joins", func(t *testing.T) {
		assert.Equal(t, `x = "1" && y = "2"`, golembase.And(a, b).String())
	})

	t.Run("SingleTermBare", func(t *testing.T) {
		assert.Equal(t, `x = "1"`, golembase.And(a).String())
	})

	t.Run("SkipsZeroExprs", func(t *testing.T) {
		assert.Equal(t, `x = "1"`, golembase.And(golembase.Expr{}, a).String())
	})

	t.Run("ParenthesizesDisjunction", func(t *testing.T) {
		or := golembase.Or(a, b)
		c := golembase.Eq("z", "3")
		assert.Equal(t, `(x = "1" || y = "2") && z = "3"`, golembase.And(or, c).String())
	})
}

func TestOr(t *testing.T) {
	a := golembase.Eq("x", "1")
	b := golembase.Eq("y", "2")

	t.Run("Joins", func(t *testing.T) {
		assert.Equal(t, `x = "1" || y = "2"`, golembase.Or(a, b).String())
	})

	t.Run("ConjunctionsStayFlat", func(t *testing.T) {
		left := golembase.And(golembase.Eq("f", "a.png"), golembase.Eq("c", "img"))
		right := golembase.And(golembase.Eq("f", "b.png"), golembase.Eq("c", "img"))
		assert.Equal(t,
			`f = "a.png" && c = "img" || f = "b.png" && c = "img"`,
			golembase.Or(left, right).String())
	})

	t.Run("Empty", func(t *testing.T) {
		assert.True(t, golembase.Or().IsZero())
	})
}
