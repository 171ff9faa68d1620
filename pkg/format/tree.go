package format

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/leapstack-labs/leapsh/pkg/core"
	"gopkg.in/yaml.v3"
)

// TreeMap converts a node into nested maps and slices suitable for JSON or
// YAML encoding. Every map carries a "type" key and, when known, a "pos"
// key in "line:column" form.
func TreeMap(node core.Node) map[string]any {
	if node == nil {
		return nil
	}

	m := map[string]any{}
	if pos := node.Pos(); pos.IsValid() {
		m["pos"] = pos.String()
	}

	switch n := node.(type) {
	case *core.Program:
		m["type"] = "Program"
		m["body"] = stmtMaps(n.Body)
		if len(n.Warnings) > 0 {
			warnings := make([]string, 0, len(n.Warnings))
			for _, w := range n.Warnings {
				warnings = append(warnings, w.Pos.String()+": "+w.Message)
			}
			m["warnings"] = warnings
		}
	case *core.Command:
		m["type"] = "Command"
		m["name"] = n.Name
		if len(n.Words) > 0 {
			m["args"] = exprMaps(n.Words)
		} else if len(n.Args) > 0 {
			m["args"] = n.Args
		}
	case *core.Pipeline:
		m["type"] = "Pipeline"
		cmds := make([]map[string]any, 0, len(n.Commands))
		for _, c := range n.Commands {
			cmds = append(cmds, TreeMap(c))
		}
		m["commands"] = cmds
	case *core.Conditional:
		m["type"] = "Conditional"
		m["condition"] = exprMap(n.Condition)
		m["then"] = stmtMaps(n.Then)
		if n.HasElse() {
			m["else"] = stmtMaps(n.Else)
		}
	case *core.Loop:
		m["type"] = "Loop"
		m["kind"] = string(n.Kind)
		if n.Kind == core.LoopFor {
			m["variable"] = n.Variable
			m["iterable"] = exprMap(n.Iterable)
		} else {
			m["condition"] = exprMap(n.Condition)
		}
		m["body"] = stmtMaps(n.Body)
	case *core.FunctionDecl:
		m["type"] = "FunctionDecl"
		m["name"] = n.Name
		m["body"] = stmtMaps(n.Body)
	case *core.Assignment:
		m["type"] = "Assignment"
		m["name"] = n.Name
		m["value"] = exprMap(n.Value)
	case *core.Literal:
		m["type"] = "Literal"
		m["value"] = n.Value
		m["quoted"] = n.Quoted
	case *core.Variable:
		m["type"] = "Variable"
		m["name"] = n.Name
		if n.Braced {
			m["braced"] = true
		}
	case *core.CommandSubstitution:
		m["type"] = "CommandSubstitution"
		m["body"] = stmtMaps(n.Body)
	case *core.CommandExpr:
		m["type"] = "CommandExpr"
		m["command"] = TreeMap(n.Cmd)
	default:
		m["type"] = fmt.Sprintf("%T", node)
	}
	return m
}

func stmtMaps(stmts []core.Stmt) []map[string]any {
	out := make([]map[string]any, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, TreeMap(s))
	}
	return out
}

func exprMaps(exprs []core.Expr) []map[string]any {
	out := make([]map[string]any, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, exprMap(e))
	}
	return out
}

func exprMap(e core.Expr) map[string]any {
	if e == nil {
		return nil
	}
	return TreeMap(e)
}

// TreeJSON encodes the tree as indented JSON.
func TreeJSON(prog *core.Program) ([]byte, error) {
	data, err := json.MarshalIndent(TreeMap(prog), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tree as json: %w", err)
	}
	return append(data, '\n'), nil
}

// TreeYAML encodes the tree as YAML.
func TreeYAML(prog *core.Program) ([]byte, error) {
	data, err := yaml.Marshal(TreeMap(prog))
	if err != nil {
		return nil, fmt.Errorf("encode tree as yaml: %w", err)
	}
	return data, nil
}

// Tree renders an indented outline of the tree, one node per line.
func Tree(prog *core.Program) string {
	p := newPrinter(DefaultIndent)
	p.treeNode(prog)
	return p.String()
}

func (p *Printer) treeNode(node core.Node) {
	switch n := node.(type) {
	case *core.Program:
		p.treeLine("Program", node)
		p.treeStmts("", n.Body)
	case *core.Command:
		p.treeLine("Command "+n.Name, node)
		p.indent()
		for _, w := range n.Words {
			p.treeNode(w)
		}
		if len(n.Words) == 0 {
			for _, a := range n.Args {
				p.write("Arg " + strconv.Quote(a))
				p.writeln()
			}
		}
		p.dedent()
	case *core.Pipeline:
		p.treeLine("Pipeline", node)
		p.indent()
		for _, c := range n.Commands {
			p.treeNode(c)
		}
		p.dedent()
	case *core.Conditional:
		p.treeLine("Conditional", node)
		p.treeField("condition", n.Condition)
		p.treeStmts("then", n.Then)
		if n.HasElse() {
			p.treeStmts("else", n.Else)
		}
	case *core.Loop:
		p.treeLine("Loop "+string(n.Kind), node)
		if n.Kind == core.LoopFor {
			p.indent()
			p.write("variable " + n.Variable)
			p.writeln()
			p.dedent()
			p.treeField("iterable", n.Iterable)
		} else {
			p.treeField("condition", n.Condition)
		}
		p.treeStmts("body", n.Body)
	case *core.FunctionDecl:
		p.treeLine("FunctionDecl "+n.Name, node)
		p.treeStmts("", n.Body)
	case *core.Assignment:
		p.treeLine("Assignment "+n.Name, node)
		p.indent()
		p.treeNode(n.Value)
		p.dedent()
	case *core.Literal:
		label := "Literal " + strconv.Quote(n.Value)
		if n.Quoted {
			label += " quoted"
		}
		p.treeLine(label, node)
	case *core.Variable:
		p.treeLine("Variable "+n.Name, node)
	case *core.CommandSubstitution:
		p.treeLine("CommandSubstitution", node)
		p.treeStmts("", n.Body)
	case *core.CommandExpr:
		p.treeLine("CommandExpr", node)
		p.indent()
		p.treeNode(n.Cmd)
		p.dedent()
	}
}

func (p *Printer) treeLine(label string, node core.Node) {
	if pos := node.Pos(); pos.IsValid() {
		label += " @" + pos.String()
	}
	p.write(label)
	p.writeln()
}

func (p *Printer) treeField(name string, expr core.Expr) {
	p.indent()
	p.write(name + ":")
	p.writeln()
	p.indent()
	if expr != nil {
		p.treeNode(expr)
	}
	p.dedent()
	p.dedent()
}

// treeStmts prints stmts one level deeper, under a "name:" header when
// name is set.
func (p *Printer) treeStmts(name string, stmts []core.Stmt) {
	p.indent()
	if name != "" {
		p.write(name + ":")
		p.writeln()
		p.indent()
	}
	for _, s := range stmts {
		p.treeNode(s)
	}
	if name != "" {
		p.dedent()
	}
	p.dedent()
}
