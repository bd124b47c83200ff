package conn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFactoryCreateSuccess(t *testing.T) {
	f := NewSequenceFactory()
	require.NoError(t, f.Create("seq1 1 2"))
	require.Equal(t, "1", f.Row())
}

func TestFactoryCreateErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"bad tokenization", "seq1 1", "Bad request"},
		{"non numeric", "seq1 a b", "Bad request"},
		{"id out of range", "seq4 1 1", "Sequence number must be in range [1;3]"},
		{"id zero", "seq0 1 1", "Sequence number must be in range [1;3]"},
		{"start zero", "seq1 0 1", "Start parameter not valid"},
		{"step zero", "seq1 1 0", "Step parameter not valid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewSequenceFactory()
			err := f.Create(tt.line)
			require.Error(t, err)
			require.Equal(t, tt.want, err.Error())
		})
	}
}

func TestFactoryDuplicateID(t *testing.T) {
	f := NewSequenceFactory()
	require.NoError(t, f.Create("seq1 1 2"))

	err := f.Create("seq1 5 5")
	require.Error(t, err)
	require.Equal(t, "Sequence already exists", err.Error())
}

func TestFactoryRowEmptyWhenNoSequences(t *testing.T) {
	f := NewSequenceFactory()
	require.Empty(t, f.Row())
}

func TestFactoryRowOrderingAndAdvance(t *testing.T) {
	f := NewSequenceFactory()
	mustCreate(t, f, "seq3 3 4")
	mustCreate(t, f, "seq1 1 2")
	mustCreate(t, f, "seq2 2 3")

	require.Equal(t, "1\t2\t3", f.Row())
	require.Equal(t, "3\t5\t7", f.Row())
	require.Equal(t, "5\t8\t11", f.Row())
}

func mustCreate(t *testing.T, f *SequenceFactory, line string) {
	t.Helper()
	require.NoError(t, f.Create(line))
}
