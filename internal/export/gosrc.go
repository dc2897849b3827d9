package export

import (
	"fmt"
	"go/token"
	"io"

	"github.com/dave/jennifer/jen"
	"github.com/dekarrin/renfa/automaton"
)

const automatonPath = "github.com/dekarrin/renfa/automaton"

// GoSource writes a Go source file to w that declares a function returning a
// copy of nfa, built through the automaton API. The package and function
// names are taken from opts.
func GoSource(w io.Writer, nfa automaton.NFA, opts Options) error {
	pkg := opts.Package
	if pkg == "" {
		pkg = "nfas"
	}
	funcName := opts.FuncName
	if funcName == "" {
		funcName = "NFA"
	}

	if !token.IsIdentifier(pkg) {
		return fmt.Errorf("package name %q is not a valid identifier", pkg)
	}
	if !token.IsIdentifier(funcName) {
		return fmt.Errorf("function name %q is not a valid identifier", funcName)
	}

	f := jen.NewFile(pkg)
	if opts.Expr != "" {
		f.HeaderComment(fmt.Sprintf("Code generated by renfa for expression %q.", opts.Expr))
	} else {
		f.HeaderComment("Code generated by renfa.")
	}
	f.HeaderComment("DO NOT EDIT.")

	body := []jen.Code{
		jen.Var().Id("nfa").Qual(automatonPath, "NFA"),
	}

	for _, id := range nfa.States().Elements() {
		body = append(body, jen.Id("nfa").Dot("AddState").Call(jen.Lit(id), jen.Lit(nfa.IsFinal(id))))
	}

	if start, ok := nfa.Start(); ok {
		body = append(body, jen.Id("nfa").Dot("SetStart").Call(jen.Lit(start)))
	}

	for _, t := range nfa.Transitions() {
		var input jen.Code
		if t.IsEpsilon() {
			input = jen.Qual(automatonPath, "Epsilon")
		} else {
			input = jen.Lit(t.Input)
		}
		body = append(body, jen.Id("nfa").Dot("AddTransition").Call(jen.Lit(t.From), input, jen.Lit(t.To)))
	}

	body = append(body, jen.Return(jen.Id("nfa")))

	f.Comment(fmt.Sprintf("%s returns a new copy of the compiled NFA.", funcName))
	f.Func().Id(funcName).Params().Qual(automatonPath, "NFA").Block(body...)

	return f.Render(w)
}
