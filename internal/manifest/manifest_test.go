package manifest

import (
	"encoding/json"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sen2compare/internal/compose"
	"sen2compare/internal/raster"
	"sen2compare/internal/simulate"
)

func TestWrite(t *testing.T) {
	dir := t.TempDir()

	specs := []compose.Spec{
		{Name: "rgb", Kind: compose.KindStack, Bands: []string{"B4", "B3", "B2"}},
		{Name: "ndvi", Kind: compose.KindIndex, Bands: []string{"B8", "B4"}},
	}
	methods := []simulate.Method{
		simulate.Baseline,
		{Name: "SEN2SR", Factor: 4},
	}
	scenes := []raster.Metadata{
		{SceneID: "scene-a", CloudCover: 3.5},
		{SceneID: "scene-b", CloudCover: 11},
	}

	require.NoError(t, Write(dir, "combe_valtin", "Combe Valtin", []string{"B2", "B3", "B4", "B8"}, specs, methods, scenes))

	bytes, err := os.ReadFile(path.Join(dir, "manifest.json"))
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, json.Unmarshal(bytes, &m))

	assert.Equal(t, "combe_valtin", m.Zone)
	assert.Equal(t, []string{"rgb", "ndvi"}, m.Compositions)
	assert.Equal(t, []string{"brut", "SEN2SR"}, m.Methods)
	require.Len(t, m.Scenes, 2)
	assert.Equal(t, "scene-a", m.Scenes[0].SceneID)
	assert.Equal(t, 1, m.Scenes[1].Index)
}
