package usecase

import (
	"context"
	"testing"

	"github.com/runoshun/task-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowConfigTemplate_Execute(t *testing.T) {
	tests := []struct {
		name         string
		input        ShowConfigTemplateInput
		wantContains []string
	}{
		{
			name:  "defaults when config is nil",
			input: ShowConfigTemplateInput{},
			wantContains: []string{
				"[tasks]",
				`"tasks.json"`,
				`"backup"`,
				"[log]",
				"[display]",
				"[shell]",
			},
		},
		{
			name: "renders given values",
			input: ShowConfigTemplateInput{
				Config: func() *domain.Config {
					cfg := domain.NewDefaultConfig()
					cfg.Tasks.File = "work.json"
					cfg.Log.Level = "debug"
					return cfg
				}(),
			},
			wantContains: []string{
				`"work.json"`,
				`"debug"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewShowConfigTemplate()
			out, err := uc.Execute(context.Background(), tt.input)

			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, out.Template, want)
			}
		})
	}
}
