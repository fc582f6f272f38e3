package debugobj_test

import (
	"bytes"
	"testing"

	"github.com/arc-language/typelayout/debugobj"
	"github.com/arc-language/typelayout/hirtype"
	"github.com/arc-language/typelayout/layout"
	"github.com/arc-language/typelayout/resolve"
	"github.com/arc-language/typelayout/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	require.NoError(t, target.SetCurrent("x86_64-linux-gnu"))
	oracle := layout.New(target.Current(), resolve.NewStatic())

	def := &hirtype.StructDef{
		Name: "Pair",
		Repr: hirtype.ReprRust,
		Fields: []hirtype.FieldDef{
			{Name: "a", Type: hirtype.Primitive{Core: hirtype.U8}},
			{Name: "b", Type: hirtype.Primitive{Core: hirtype.U32}},
		},
	}
	repr, ok := oracle.StructRepr(def)
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, debugobj.Write(&buf, []debugobj.Entry{{Name: "Pair", Repr: repr}}))

	entries, err := debugobj.Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Pair", entries[0].Name)
	assert.Contains(t, entries[0].Text, "size=8")
	assert.Contains(t, entries[0].Text, "field[1] offset=4")
}
