package ast

// Inspect traverses the tree depth-first, calling f for every node.
// When f returns false, the node's children are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch x := n.(type) {
	case *Chunk:
		if x.Block != nil {
			Inspect(x.Block, f)
		}
	case *Block:
		for _, s := range x.Stmts {
			Inspect(s, f)
		}

	case *LocalStmt:
		for _, e := range x.Exprs {
			Inspect(e, f)
		}
	case *AssignStmt:
		for _, t := range x.Targets {
			Inspect(t, f)
		}
		for _, e := range x.Exprs {
			Inspect(e, f)
		}
	case *CallStmt:
		Inspect(x.Call, f)
	case *DoStmt:
		Inspect(x.Body, f)
	case *WhileStmt:
		Inspect(x.Cond, f)
		Inspect(x.Body, f)
	case *RepeatStmt:
		Inspect(x.Body, f)
		Inspect(x.Cond, f)
	case *IfStmt:
		for i := range x.Clauses {
			Inspect(x.Clauses[i].Cond, f)
			Inspect(x.Clauses[i].Body, f)
		}
		if x.Else != nil {
			Inspect(x.Else, f)
		}
	case *NumericForStmt:
		Inspect(x.Start, f)
		Inspect(x.Stop, f)
		if x.Step != nil {
			Inspect(x.Step, f)
		}
		Inspect(x.Body, f)
	case *GenericForStmt:
		for _, e := range x.Exprs {
			Inspect(e, f)
		}
		Inspect(x.Body, f)
	case *FuncStmt:
		Inspect(x.Func, f)
	case *LocalFuncStmt:
		Inspect(x.Func, f)
	case *ReturnStmt:
		for _, e := range x.Exprs {
			Inspect(e, f)
		}

	case *IndexExpr:
		Inspect(x.Obj, f)
		if x.Key != nil {
			Inspect(x.Key, f)
		}
	case *CallExpr:
		Inspect(x.Fn, f)
		for _, a := range x.Args {
			Inspect(a, f)
		}
	case *FuncExpr:
		Inspect(x.Body, f)
	case *TableExpr:
		for i := range x.Fields {
			if x.Fields[i].Key != nil {
				Inspect(x.Fields[i].Key, f)
			}
			if x.Fields[i].Value != nil {
				Inspect(x.Fields[i].Value, f)
			}
		}
	case *BinaryExpr:
		Inspect(x.L, f)
		Inspect(x.R, f)
	case *UnaryExpr:
		Inspect(x.X, f)
	case *ParenExpr:
		Inspect(x.Inner, f)
	}
}
