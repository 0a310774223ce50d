package builtins

import "github.com/lumen-lang/lumen/internal/ast"

func strNode(s string) *ast.Node { return &ast.Node{Kind: ast.KindStringLiteral, Str: s} }
func numNode(n float64) *ast.Node { return &ast.Node{Kind: ast.KindNumberLiteral, Num: n} }
func identNode(s string) *ast.Node { return &ast.Node{Kind: ast.KindIdentifier, Str: s} }

func callNode(name string, args ...*ast.Node) *ast.Node {
	children := append([]*ast.Node{identNode(name)}, args...)
	return &ast.Node{Kind: ast.KindCall, Children: children}
}
