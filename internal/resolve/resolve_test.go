package resolve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trusty-lang/trustyc/internal/ast"
	"github.com/trusty-lang/trustyc/internal/errors"
)

func TestResolveStdlibNamedImport(t *testing.T) {
	info, err := Resolve(&ast.ImportDecl{Source: "trusty:math", Named: []string{"sqrt"}})
	require.NoError(t, err)
	require.NotEmpty(t, info.UseStatements)
	require.Contains(t, info.UseStatements[0], "pub fn sqrt")
}

func TestResolveStdlibRandRequiresCrate(t *testing.T) {
	info, err := Resolve(&ast.ImportDecl{Source: "trusty:rand"})
	require.NoError(t, err)
	require.NotEmpty(t, info.RequiredCrates)
}

func TestResolveStdlibUnknownModuleIsNotFatal(t *testing.T) {
	info, err := Resolve(&ast.ImportDecl{Source: "trusty:nope"})
	require.NoError(t, err)
	require.Len(t, info.UseStatements, 1)
	require.Contains(t, info.UseStatements[0], "not yet implemented")
	require.Empty(t, info.RequiredCrates)
}

func TestResolveStdlibMixedDefaultAndNamedFails(t *testing.T) {
	_, err := Resolve(&ast.ImportDecl{Source: "trusty:math", DefaultAlias: "m", Named: []string{"sqrt"}})
	require.Error(t, err)
	report, ok := errors.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errors.RES001, report.Code)
}

func TestResolveStdlibDefaultAliasOnlyForMath(t *testing.T) {
	info, err := Resolve(&ast.ImportDecl{Source: "trusty:math", DefaultAlias: "m"})
	require.NoError(t, err)
	require.Equal(t, []string{"m"}, info.ModuleAliases)
	require.Contains(t, info.UseStatements[0], "mod __trusty_math")
	require.Contains(t, info.UseStatements[0], "use __trusty_math as m;")

	_, err = Resolve(&ast.ImportDecl{Source: "trusty:time", DefaultAlias: "t"})
	require.Error(t, err)
	report, ok := errors.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errors.RES002, report.Code)
}

func TestResolveLocalModuleIsPreBundled(t *testing.T) {
	info, err := Resolve(&ast.ImportDecl{Source: "./helpers", Named: []string{"x"}})
	require.NoError(t, err)
	require.Empty(t, info.UseStatements)
	require.Empty(t, info.RequiredCrates)
}

func TestResolveExternalCrate(t *testing.T) {
	info, err := Resolve(&ast.ImportDecl{Source: "serde_json/Value", Named: []string{"Value"}})
	require.NoError(t, err)
	require.Equal(t, []string{"use serde_json::Value::Value;"}, info.UseStatements)
	require.Equal(t, []string{"serde_json"}, info.RequiredCrates)
}

func TestResolveExternalNamedMultiple(t *testing.T) {
	info, err := Resolve(&ast.ImportDecl{Source: "std/collections", Named: []string{"HashMap", "HashSet"}})
	require.NoError(t, err)
	require.Equal(t, []string{"use std::collections::{HashMap, HashSet};"}, info.UseStatements)
	require.Empty(t, info.RequiredCrates)
}

func TestResolveExternalDefaultAlias(t *testing.T) {
	info, err := Resolve(&ast.ImportDecl{Source: "rand", DefaultAlias: "r"})
	require.NoError(t, err)
	require.Equal(t, []string{"use rand as r;"}, info.UseStatements)
	require.Equal(t, []string{"r"}, info.ModuleAliases)
	require.Equal(t, []string{"rand"}, info.RequiredCrates)
}

func TestResolveExternalMixedDefaultAndNamedFails(t *testing.T) {
	_, err := Resolve(&ast.ImportDecl{Source: "rand", DefaultAlias: "r", Named: []string{"thread_rng"}})
	require.Error(t, err)
	report, ok := errors.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errors.RES003, report.Code)
}

func TestDurationConstructor(t *testing.T) {
	got, ok := DurationConstructor("millis", "5")
	require.True(t, ok)
	require.Equal(t, "Duration::from_millis((5) as u64)", got)

	_, ok = DurationConstructor("bogus", "5")
	require.False(t, ok)
}

func TestTimeInstanceMethod(t *testing.T) {
	got, ok := TimeInstanceMethod("asMillis")
	require.True(t, ok)
	require.Equal(t, "as_millis", got)

	_, ok = TimeInstanceMethod("bogus")
	require.False(t, ok)
}

func TestUsesJSON(t *testing.T) {
	require.True(t, UsesJSON([]*ast.ImportDecl{{Source: "trusty:json"}}))
	require.False(t, UsesJSON([]*ast.ImportDecl{{Source: "trusty:math"}}))
}
