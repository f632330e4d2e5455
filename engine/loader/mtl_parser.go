package loader

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/model"
)

// loadMaterialLibraries parses every referenced MTL file. A missing or broken library is
// logged and skipped; its materials then resolve to none and the meshes use the default colour.
//
// Parameters:
//   - fsys: the file system holding the libraries
//   - dir: directory of the OBJ file, libraries and textures are relative to it
//   - libs: library file names from mtllib statements
//
// Returns:
//   - []common.ImportedMaterial: all materials in definition order
//   - map[string]int: material name to index, later definitions win
func loadMaterialLibraries(fsys fs.FS, dir string, libs []string) ([]common.ImportedMaterial, map[string]int) {
	var materials []common.ImportedMaterial
	index := make(map[string]int)

	for _, lib := range libs {
		name := path.Join(dir, cleanRef(lib))
		f, err := fsys.Open(name)
		if err != nil {
			common.LogWarn("mtllib not loaded", "file", name, "err", err)
			continue
		}
		mats, err := parseMTL(f, name, dir)
		f.Close()
		if err != nil {
			common.LogWarn("mtllib not loaded", "file", name, "err", err)
			continue
		}
		for _, m := range mats {
			index[m.Name] = len(materials)
			materials = append(materials, m)
		}
	}
	return materials, index
}

// parseMTL reads newmtl, Kd and map_Kd statements. Materials without Kd use model.DefaultColor.
func parseMTL(r io.Reader, file, dir string) ([]common.ImportedMaterial, error) {
	var mats []common.ImportedMaterial
	var current *common.ImportedMaterial

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(stripComment(sc.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%s:%d: newmtl without a name", file, line)
			}
			mats = append(mats, common.ImportedMaterial{
				Name:         strings.Join(fields[1:], " "),
				DiffuseColor: model.DefaultColor,
			})
			current = &mats[len(mats)-1]
		case "Kd":
			if current == nil {
				return nil, fmt.Errorf("%s:%d: Kd before newmtl", file, line)
			}
			kd, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: Kd: %w", file, line, err)
			}
			current.DiffuseColor = kd
		case "map_Kd":
			if current == nil {
				return nil, fmt.Errorf("%s:%d: map_Kd before newmtl", file, line)
			}
			if len(fields) < 2 {
				return nil, fmt.Errorf("%s:%d: map_Kd without a file", file, line)
			}
			// options such as -s or -o precede the file name
			ref := cleanRef(fields[len(fields)-1])
			current.DiffuseTexture = &common.ImportedTexture{
				Name: path.Base(ref),
				Path: path.Join(dir, ref),
			}
		}
	}
	return mats, sc.Err()
}

// cleanRef normalises a file reference written on Windows.
func cleanRef(ref string) string {
	return strings.ReplaceAll(ref, `\`, "/")
}
