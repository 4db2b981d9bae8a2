package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatASTPretty prints the statement list as an indented tree.
func FormatASTPretty(w io.Writer, builder *ast.Builder, root ast.StmtID, fs *source.FileSet) error {
	node, err := buildScriptTreeNode(builder, root, fs)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, node.label)
	for i, child := range node.children {
		writeIndented(w, child, "", i == len(node.children)-1)
	}
	return nil
}

func writeIndented(w io.Writer, node *treeNode, prefix string, last bool) {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, branch, node.label)
	for i, child := range node.children {
		writeIndented(w, child, prefix+next, i == len(node.children)-1)
	}
}

// FormatASTJSON dumps the script as nested JSON nodes.
func FormatASTJSON(w io.Writer, builder *ast.Builder, root ast.StmtID) error {
	blk, ok := builder.Stmts.Block(root)
	if !ok {
		return fmt.Errorf("statement %d is not a script root", root)
	}
	output := ASTNodeOutput{
		Type: "Script",
		Span: builder.Stmts.Get(root).Span,
	}
	for _, stmtID := range blk.Stmts {
		output.Children = append(output.Children, stmtJSON(builder, stmtID))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func buildScriptTreeNode(builder *ast.Builder, root ast.StmtID, fs *source.FileSet) (*treeNode, error) {
	blk, ok := builder.Stmts.Block(root)
	if !ok {
		return nil, fmt.Errorf("statement %d is not a script root", root)
	}
	node := &treeNode{label: fmt.Sprintf("Script (%d statements)", len(blk.Stmts))}
	for idx, stmtID := range blk.Stmts {
		node.children = append(node.children, stmtTreeNode(builder, stmtID, fs, idx))
	}
	return node, nil
}

func stmtTreeNode(b *ast.Builder, id ast.StmtID, fs *source.FileSet, idx int) *treeNode {
	stmt := b.Stmts.Get(id)
	if stmt == nil {
		return &treeNode{label: fmt.Sprintf("[%d] <nil>", idx)}
	}
	at := formatSpan(stmt.Span, fs)
	switch stmt.Kind {
	case ast.StmtAssign:
		data, _ := b.Stmts.Assign(id)
		return &treeNode{
			label:    fmt.Sprintf("[%d] Assign %s (%s)", idx, b.Name(data.Name), at),
			children: []*treeNode{exprTreeNode(b, data.Value)},
		}
	case ast.StmtLabel:
		data, _ := b.Stmts.Label(id)
		return &treeNode{label: fmt.Sprintf("[%d] Label %s (%s)", idx, b.Name(data.Name), at)}
	case ast.StmtGoto:
		data, _ := b.Stmts.Goto(id)
		node := &treeNode{label: fmt.Sprintf("[%d] Goto %s (%s)", idx, b.Name(data.Label), at)}
		if data.Cond.IsValid() {
			node.children = append(node.children, exprTreeNode(b, data.Cond))
		}
		return node
	case ast.StmtAction:
		data, _ := b.Stmts.Action(id)
		node := &treeNode{label: fmt.Sprintf("[%d] Action %s (%s)", idx, b.Name(data.Name), at)}
		for _, arg := range data.Args {
			node.children = append(node.children, exprTreeNode(b, arg))
		}
		return node
	case ast.StmtBlock:
		data, _ := b.Stmts.Block(id)
		return &treeNode{label: fmt.Sprintf("[%d] Block of %d (%s)", idx, len(data.Stmts), at)}
	default:
		return &treeNode{label: fmt.Sprintf("[%d] %s (%s)", idx, stmt.Kind, at)}
	}
}

func exprTreeNode(b *ast.Builder, id ast.ExprID) *treeNode {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return &treeNode{label: "<nil>"}
	}
	switch expr.Kind {
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		return &treeNode{
			label:    "Binary " + data.Op.String(),
			children: []*treeNode{exprTreeNode(b, data.Left), exprTreeNode(b, data.Right)},
		}
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		return &treeNode{
			label:    "Unary " + data.Op.String(),
			children: []*treeNode{exprTreeNode(b, data.Operand)},
		}
	case ast.ExprVariable:
		data, _ := b.Exprs.Variable(id)
		return &treeNode{label: "Variable " + b.Name(data.Name)}
	case ast.ExprLiteral:
		data, _ := b.Exprs.Literal(id)
		return &treeNode{label: "Literal " + literalText(data)}
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		node := &treeNode{label: "Call " + b.Name(data.Name)}
		for _, arg := range data.Args {
			node.children = append(node.children, exprTreeNode(b, arg))
		}
		return node
	default:
		return &treeNode{label: expr.Kind.String()}
	}
}

func literalText(data *ast.ExprLiteralData) string {
	switch data.Kind {
	case ast.LitInt:
		return strconv.FormatInt(data.Int, 10)
	case ast.LitBool:
		return strconv.FormatBool(data.Bool)
	case ast.LitString:
		return strconv.Quote(data.Str)
	default:
		return "?"
	}
}

func stmtJSON(b *ast.Builder, id ast.StmtID) ASTNodeOutput {
	stmt := b.Stmts.Get(id)
	if stmt == nil {
		return ASTNodeOutput{Type: "Stmt", Kind: "Invalid"}
	}
	out := ASTNodeOutput{Type: "Stmt", Kind: stmt.Kind.String(), Span: stmt.Span}
	switch stmt.Kind {
	case ast.StmtAssign:
		data, _ := b.Stmts.Assign(id)
		out.Text = b.Name(data.Name)
		out.Children = []ASTNodeOutput{exprJSON(b, data.Value)}
	case ast.StmtLabel:
		data, _ := b.Stmts.Label(id)
		out.Text = b.Name(data.Name)
	case ast.StmtGoto:
		data, _ := b.Stmts.Goto(id)
		out.Text = b.Name(data.Label)
		out.Fields = map[string]any{"conditional": data.Cond.IsValid()}
		if data.Cond.IsValid() {
			out.Children = []ASTNodeOutput{exprJSON(b, data.Cond)}
		}
	case ast.StmtAction:
		data, _ := b.Stmts.Action(id)
		out.Text = b.Name(data.Name)
		out.Fields = map[string]any{"builtin": data.Op.IsValid()}
		for _, arg := range data.Args {
			out.Children = append(out.Children, exprJSON(b, arg))
		}
	case ast.StmtBlock:
		data, _ := b.Stmts.Block(id)
		for _, child := range data.Stmts {
			out.Children = append(out.Children, stmtJSON(b, child))
		}
	}
	return out
}

func exprJSON(b *ast.Builder, id ast.ExprID) ASTNodeOutput {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return ASTNodeOutput{Type: "Expr", Kind: "Invalid"}
	}
	out := ASTNodeOutput{Type: "Expr", Kind: expr.Kind.String(), Span: expr.Span}
	switch expr.Kind {
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		out.Text = data.Op.String()
		out.Children = []ASTNodeOutput{exprJSON(b, data.Left), exprJSON(b, data.Right)}
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		out.Text = data.Op.String()
		out.Children = []ASTNodeOutput{exprJSON(b, data.Operand)}
	case ast.ExprVariable:
		data, _ := b.Exprs.Variable(id)
		out.Text = b.Name(data.Name)
	case ast.ExprLiteral:
		data, _ := b.Exprs.Literal(id)
		out.Text = literalText(data)
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		out.Text = b.Name(data.Name)
		out.Fields = map[string]any{"builtin": data.Op.IsValid()}
		for _, arg := range data.Args {
			out.Children = append(out.Children, exprJSON(b, arg))
		}
	}
	return out
}

// formatSpan prints "row:col" when the file is known, the raw span otherwise.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if !knownSpan(fs, span) {
		return span.String()
	}
	return fs.Coord(span).String()
}
