package renderer

import (
	"embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-shadow/engine/geometry"
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
)

//go:embed assets/*.wgsl
var shaderAssets embed.FS

// shaderSource reads an embedded WGSL program and fills in the texture unit group
// numbers and the shared VertexInput and ShadowData structs.
//
// Parameters:
//   - name: the file name under assets/
//   - diffuse: the diffuse texture unit
//   - shadow: the shadow map texture unit
//
// Returns:
//   - string: the WGSL source
//   - error: an error if the asset does not exist
func shaderSource(name string, diffuse, shadow TextureUnit) (string, error) {
	raw, err := shaderAssets.ReadFile("assets/" + name)
	if err != nil {
		return "", fmt.Errorf("shader %s: %w", name, err)
	}
	return strings.NewReplacer(
		"{{DIFFUSE_GROUP}}", strconv.Itoa(int(textureGroup(diffuse))),
		"{{SHADOW_GROUP}}", strconv.Itoa(int(textureGroup(shadow))),
		"{{VERTEX_INPUT}}", geometry.GPUVertexSource,
		"{{SHADOW_DATA}}", light.GPUShadowDataSource,
	).Replace(string(raw)), nil
}

// Bind group indices. Group 0 is the program's frame block, group 1 the shared object
// arena, and every texture unit gets its own group after those.
const (
	frameGroup  uint32 = 0
	objectGroup uint32 = 1
)

func textureGroup(unit TextureUnit) uint32 {
	return 2 + uint32(unit)
}
