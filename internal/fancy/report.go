package fancy

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"
)

// ScriptRow is one line of a resolution report.
type ScriptRow struct {
	Name   string
	Path   string
	OK     bool
	Kind   string
	Detail string
}

// ResolutionReport renders the outcome of resolving a set of scripts as a
// tree rooted at the script directory.
func ResolutionReport(root, engine string, rows []ScriptRow) *tree.Tree {
	failed := 0
	for _, r := range rows {
		if !r.OK {
			failed++
		}
	}

	t := Tree().Root(RootStyle.Render(root) + " " + InfoStyle.Render("("+engine+")"))
	for _, r := range rows {
		t.Child(scriptNode(r))
	}
	t.Child(SummaryText(fmt.Sprintf("%d checked, %d ok, %d failed", len(rows), len(rows)-failed, failed)))
	return t
}

func scriptNode(r ScriptRow) *tree.Tree {
	if r.OK {
		return BranchNode(ScriptText(r.Name), ValidText("ok")).Child(PathText(r.Path))
	}
	node := BranchNode(ScriptText(r.Name), ErrorText(r.Kind)).Child(PathText(r.Path))
	if r.Detail != "" {
		node.Child(ErrorText(TruncateString(r.Detail, 120)))
	}
	return node
}

// ActionList renders the bridge actions produced by one invocation.
func ActionList(title string, handled bool, actions []string) *tree.Tree {
	status := ErrorText("not handled")
	if handled {
		status = ValidText("handled")
	}
	t := BranchNode(ScriptText(title), status)
	for _, a := range actions {
		t.Child(ActionText(a))
	}
	return t
}
