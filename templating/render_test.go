package templating_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/byte4ever/bracetpl/templating"
)

func TestRender_literal_node(t *testing.T) {
	t.Parallel()

	node := &templating.LiteralNode{Content: "hello there"}

	assert.Equal(t, "hello there", templating.Render(node, nil))
}

func TestRender_content_before_children(t *testing.T) {
	t.Parallel()

	node := &templating.LiteralNode{
		Content: "a",
		Children: []templating.Node{
			&templating.LiteralNode{
				Content: "b",
				Children: []templating.Node{
					&templating.VariableNode{Name: "c"},
				},
			},
			&templating.LiteralNode{Content: "d"},
		},
	}

	got := templating.Render(
		node, map[string]string{"c": "C"},
	)

	assert.Equal(t, "abCd", got)
}

func TestExecute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tpl      string
		bindings map[string]string
		want     string
	}{
		{
			name:     "substitution",
			tpl:      "Hello {{name}}.",
			bindings: map[string]string{"name": "world"},
			want:     "Hello world.",
		},
		{
			name:     "missing binding",
			tpl:      "{{missing}}",
			bindings: map[string]string{},
			want:     "",
		},
		{
			name:     "nil bindings",
			tpl:      "x{{missing}}y",
			bindings: nil,
			want:     "xy",
		},
		{
			name:     "order preserved",
			tpl:      "{{a}}-{{b}}",
			bindings: map[string]string{"a": "1", "b": "2"},
			want:     "1-2",
		},
		{
			name:     "unmatched marker",
			tpl:      "a {{ b",
			bindings: map[string]string{},
			want:     "a {{ b",
		},
		{
			name:     "empty input",
			tpl:      "",
			bindings: map[string]string{"a": "1"},
			want:     "",
		},
		{
			name:     "spaced name bound with spaces",
			tpl:      "{{ x }}",
			bindings: map[string]string{" x ": "v"},
			want:     "v",
		},
		{
			name:     "spaced name bound without spaces",
			tpl:      "{{ x }}",
			bindings: map[string]string{"x": "v"},
			want:     "",
		},
		{
			name:     "value containing delimiters is not reparsed",
			tpl:      "{{a}}",
			bindings: map[string]string{"a": "{{b}}", "b": "no"},
			want:     "{{b}}",
		},
		{
			name:     "repeated variable",
			tpl:      "{{a}}{{a}}",
			bindings: map[string]string{"a": "x"},
			want:     "xx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := templating.Execute(tt.tpl, tt.bindings)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_does_not_mutate_inputs(t *testing.T) {
	t.Parallel()

	root := templating.Parse("{{a}} and {{b}}")
	bindings := map[string]string{"a": "1"}

	first := templating.Render(root, bindings)
	second := templating.Render(root, bindings)

	assert.Equal(t, first, second)
	assert.Equal(t, map[string]string{"a": "1"}, bindings)
	assert.Len(t, root.Children, 3)
}

func TestRender_concurrent_renders_share_tree(t *testing.T) {
	t.Parallel()

	root := templating.Parse("id={{id}}")

	const workers = 16

	results := make([]string, workers)

	var wg sync.WaitGroup

	for i := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			results[i] = templating.Render(
				root,
				map[string]string{"id": strings.Repeat("x", i)},
			)
		}()
	}

	wg.Wait()

	for i, got := range results {
		assert.Equal(t, "id="+strings.Repeat("x", i), got)
	}
}

func FuzzExecute_without_delimiters_round_trips(f *testing.F) {
	f.Add("plain")
	f.Add("a { b } c")
	f.Add("")
	f.Add("{x}")

	f.Fuzz(func(t *testing.T, in string) {
		if strings.Contains(in, "{{") ||
			strings.Contains(in, "}}") {
			return
		}

		got := templating.Execute(
			in, map[string]string{"x": "y"},
		)

		assert.Equal(t, in, got)
	})
}
