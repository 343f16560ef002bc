package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/projtree/pkg/core"
)

func TestFormatCommitMessage(t *testing.T) {
	tests := []struct {
		name    string
		ctype   string
		scope   string
		subject string
		body    string
		want    string
	}{
		{
			name:    "simple",
			ctype:   "feat",
			subject: "add scene",
			want:    "feat: add scene\n\nManaged-by: projtree",
		},
		{
			name:    "with scope",
			ctype:   "refactor",
			scope:   "layout",
			subject: "rename Menu to Title",
			want:    "refactor(layout): rename Menu to Title\n\nManaged-by: projtree",
		},
		{
			name:    "default type and body",
			subject: "init project",
			body:    "  first commit  ",
			want:    "chore: init project\n\nfirst commit\n\nManaged-by: projtree",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCommitMessage(tt.ctype, tt.scope, tt.subject, tt.body))
		})
	}
}

func TestAppendFooter(t *testing.T) {
	assert.Equal(t, "msg\n\nManaged-by: projtree", AppendFooter("msg"))
	assert.Equal(t, "msg\n\nManaged-by: projtree", AppendFooter("msg\n"))
	assert.Equal(t, "msg\n\nManaged-by: projtree", AppendFooter("msg\n\nManaged-by: projtree"))
}

func TestChangeReason(t *testing.T) {
	assert.Equal(t,
		"feat(external-events): add NewExternalEvents\n\nManaged-by: projtree",
		ChangeReason(CommitTypeFeat, core.KindExternalEvents, "add NewExternalEvents"))
}
