package fileops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseConflictPolicy(t *testing.T) {
	tests := []struct {
		input string
		want  ConflictPolicy
	}{
		{"fail", FailOnConflict},
		{"skip", SkipOnConflict},
		{"overwrite", Overwrite},
		{"rename", RenameWithNumber},
		{"larger", OverwriteIfSourceLarger},
		{"newer", OverwriteIfSourceNewer},
		{"RenameWithNumber", RenameWithNumber},
		{"overwrite-if-source-newer", OverwriteIfSourceNewer},
		{"  SKIP  ", SkipOnConflict},
		{"Fail-On-Conflict", FailOnConflict},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseConflictPolicy(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "replace", "biggest"} {
		_, err := ParseConflictPolicy(bad)
		assert.ErrorIs(t, err, ErrUnsupportedPolicy, bad)
	}
}

func TestConflictPolicyNames(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Policies {
		assert.True(t, p.Valid())
		assert.NotEmpty(t, p.Description())
		assert.False(t, seen[p.String()], "duplicate name %s", p)
		seen[p.String()] = true

		parsed, err := ParseConflictPolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	assert.Len(t, seen, 6)

	assert.Equal(t, FailOnConflict, ConflictPolicy(0), "zero value fails on conflict")
	assert.False(t, ConflictPolicy(-1).Valid())
	assert.Equal(t, "ConflictPolicy(9)", ConflictPolicy(9).String())
}

func TestConflictPolicyYAML(t *testing.T) {
	var doc struct {
		Policy ConflictPolicy `yaml:"policy"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("policy: newer\n"), &doc))
	assert.Equal(t, OverwriteIfSourceNewer, doc.Policy)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "policy: newer\n", string(out))

	err = yaml.Unmarshal([]byte("policy: sometimes\n"), &doc)
	assert.ErrorIs(t, err, ErrUnsupportedPolicy)

	_, err = ConflictPolicy(7).MarshalText()
	assert.ErrorIs(t, err, ErrUnsupportedPolicy)
}

func TestOperationAndOutcomeStrings(t *testing.T) {
	assert.Equal(t, "move", OpMove.String())
	assert.Equal(t, "copy", OpCopy.String())
	assert.Equal(t, "Operation(5)", Operation(5).String())
	assert.Equal(t, "performed", OutcomePerformed.String())
	assert.Equal(t, "skipped", OutcomeSkipped.String())
}

func TestResolverForCoversEveryPolicy(t *testing.T) {
	for _, p := range Policies {
		r, err := resolverFor(p)
		require.NoError(t, err, p.String())
		assert.NotNil(t, r)
	}
	_, err := resolverFor(ConflictPolicy(len(Policies)))
	assert.ErrorIs(t, err, ErrUnsupportedPolicy)
}
