// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

type ref struct {
	file string
	line int
}

// localizerMethods take the resource key as their first argument.
var localizerMethods = map[string]struct{}{
	"Get":  {},
	"HTML": {},
}

// extractor holds the shared state and context for AST analysis within a package.
type extractor struct {
	refs        map[string][]ref
	projectRoot string
	fset        *token.FileSet
	info        *types.Info
	i18nPkgs    map[string]struct{}
}

// extractRefs traverses all Go source files in the given packages and
// returns the positions of every resource key found.
func extractRefs(pkgs []*packages.Package, projectRoot string, i18nPkgPaths map[string]struct{}) map[string][]ref {
	refs := map[string][]ref{}

	for _, p := range pkgs {
		if p.TypesInfo == nil {
			continue
		}

		e := &extractor{
			refs:        refs,
			projectRoot: projectRoot,
			fset:        p.Fset,
			info:        p.TypesInfo,
			i18nPkgs:    i18nPkgPaths,
		}

		for _, f := range p.Syntax {
			ast.Inspect(f, func(n ast.Node) bool {
				switch x := n.(type) {
				case *ast.CallExpr:
					e.handleCallExpr(x)
				case *ast.CompositeLit:
					e.handleCompositeLit(x)
				}

				return true
			})
		}
	}

	return refs
}

// findI18nPkgPaths returns the paths of packages named i18n that define a
// MsgKey type whose underlying type is string.
func findI18nPkgPaths(pkgs []*packages.Package) map[string]struct{} {
	out := make(map[string]struct{})

	packages.Visit(pkgs, nil, func(p *packages.Package) {
		if p.Name != "i18n" || p.Types == nil {
			return
		}

		tn, ok := p.Types.Scope().Lookup("MsgKey").(*types.TypeName)
		if !ok {
			return
		}

		if basic, ok := tn.Type().Underlying().(*types.Basic); ok && basic.Kind() == types.String {
			out[p.PkgPath] = struct{}{}
		}
	})

	return out
}

// constString evaluates expr to a constant string if possible.
// Handles string literals, const identifiers and constant expressions like "a" + "b".
func constString(info *types.Info, expr ast.Expr) (string, bool) {
	tv, ok := info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

// isI18nObject reports whether obj is declared in one of the i18n packages.
func (e *extractor) isI18nObject(obj types.Object) bool {
	if obj == nil || obj.Pkg() == nil {
		return false
	}

	_, ok := e.i18nPkgs[obj.Pkg().Path()]

	return ok
}

// isMsgKey reports whether t is exactly the named type i18n.MsgKey.
func (e *extractor) isMsgKey(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	return named.Obj().Name() == "MsgKey" && e.isI18nObject(named.Obj())
}

// handleCompositeLit finds implicit MsgKey conversions in map, slice, array
// and struct literals.
func (e *extractor) handleCompositeLit(x *ast.CompositeLit) {
	tv, ok := e.info.Types[x]
	if !ok || tv.Type == nil {
		return
	}

	t := tv.Type
	if p, ok := t.Underlying().(*types.Pointer); ok {
		t = p.Elem()
	}

	switch u := t.Underlying().(type) {
	case *types.Map:
		keyIsMK, valIsMK := e.isMsgKey(u.Key()), e.isMsgKey(u.Elem())

		for _, elt := range x.Elts {
			kv, ok := elt.(*ast.KeyValueExpr)
			if !ok {
				continue
			}

			if keyIsMK {
				e.addConst(kv.Key)
			}

			if valIsMK {
				e.addConst(kv.Value)
			}
		}
	case *types.Slice:
		if e.isMsgKey(u.Elem()) {
			for _, elt := range x.Elts {
				e.addConst(elt)
			}
		}
	case *types.Array:
		if e.isMsgKey(u.Elem()) {
			for _, elt := range x.Elts {
				e.addConst(elt)
			}
		}
	case *types.Struct:
		for i, elt := range x.Elts {
			if kv, ok := elt.(*ast.KeyValueExpr); ok {
				if id, ok := kv.Key.(*ast.Ident); ok {
					if f, ok := e.info.Uses[id].(*types.Var); ok && e.isMsgKey(f.Type()) {
						e.addConst(kv.Value)
					}
				}

				continue
			}

			if i < u.NumFields() && e.isMsgKey(u.Field(i).Type()) {
				e.addConst(elt)
			}
		}
	}
}

// handleCallExpr finds keys in conversions, localizer method calls,
// NewUserError calls and arguments of MsgKey parameters.
func (e *extractor) handleCallExpr(x *ast.CallExpr) {
	// i18n.MsgKey("Hello")
	if tv, ok := e.info.Types[x.Fun]; ok && tv.IsType() {
		if len(x.Args) == 1 && e.isMsgKey(tv.Type) {
			e.addConst(x.Args[0])
		}

		return
	}

	if fn := e.callee(x.Fun); fn != nil && e.isI18nObject(fn) {
		sig, _ := fn.Type().(*types.Signature)

		switch {
		case fn.Name() == "NewUserError" && len(x.Args) >= 2:
			e.addConst(x.Args[1])

			return
		case sig != nil && sig.Recv() != nil && len(x.Args) >= 1:
			if _, ok := localizerMethods[fn.Name()]; ok {
				e.addConst(x.Args[0])

				return
			}
		}
	}

	sig, ok := e.info.TypeOf(x.Fun).(*types.Signature)
	if !ok {
		return
	}

	params := sig.Params()

	n := params.Len()
	if n == 0 {
		return
	}

	last := n - 1

	for i, arg := range x.Args {
		var pt types.Type

		if sig.Variadic() && i >= last {
			if x.Ellipsis != token.NoPos {
				continue
			}

			pt = params.At(last).Type().(*types.Slice).Elem()
		} else {
			if i >= n {
				break
			}

			pt = params.At(i).Type()
		}

		if e.isMsgKey(pt) {
			e.addConst(arg)
		}
	}
}

// callee returns the function or method named by fun, if any.
func (e *extractor) callee(fun ast.Expr) *types.Func {
	var id *ast.Ident

	switch f := ast.Unparen(fun).(type) {
	case *ast.Ident:
		id = f
	case *ast.SelectorExpr:
		id = f.Sel
	default:
		return nil
	}

	fn, _ := e.info.Uses[id].(*types.Func)

	return fn
}

// addConst records expr when it is a constant string.
func (e *extractor) addConst(expr ast.Expr) {
	if msg, ok := constString(e.info, expr); ok && msg != "" {
		e.addRef(expr.Pos(), msg)
	}
}

// addRef records a reference to a key relative to the project root.
func (e *extractor) addRef(pos token.Pos, msg string) {
	p := e.fset.Position(pos)

	file := p.Filename
	if rel, err := filepath.Rel(e.projectRoot, file); err == nil {
		file = rel
	}

	e.refs[msg] = append(e.refs[msg], ref{file: filepath.ToSlash(file), line: p.Line})
}
