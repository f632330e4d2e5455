package loader

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/geometry"
	"github.com/Carmen-Shannon/oxy-shadow/engine/model"
)

// objLoaderBackend implements loaderBackend for Wavefront OBJ files and their MTL libraries.
// Supported statements: v, vn, vt, f, o, g, mtllib, usemtl. Everything else is ignored.
type objLoaderBackend struct{}

var _ loaderBackend = &objLoaderBackend{}

func newOBJLoaderBackend() *objLoaderBackend {
	return &objLoaderBackend{}
}

func (b *objLoaderBackend) Load(fsys fs.FS, name string) (*model.ImportedModel, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p := newOBJParser(name)
	if err := p.parse(f); err != nil {
		return nil, err
	}

	dir := path.Dir(name)
	materials, index := loadMaterialLibraries(fsys, dir, p.materialLibs)

	imported := &model.ImportedModel{
		Name:      strings.TrimSuffix(path.Base(name), path.Ext(name)),
		Materials: materials,
	}
	for _, mb := range p.builders {
		if len(mb.mesh.Indices) == 0 {
			continue
		}
		mb.mesh.MaterialIndex = -1
		if mb.material != "" {
			if idx, ok := index[mb.material]; ok {
				mb.mesh.MaterialIndex = idx
			} else {
				common.LogWarn("obj material not found", "file", name, "material", mb.material)
			}
		}
		mb.mesh.ComputeBounds()
		imported.Meshes = append(imported.Meshes, mb.mesh)
	}

	if len(imported.Meshes) == 0 {
		return nil, fmt.Errorf("%s: no faces", name)
	}
	return imported, nil
}

// objCorner is one face corner: 0-based position, texcoord and normal indices, -1 when absent.
type objCorner struct {
	v, vt, vn int
}

type meshBuilder struct {
	material string
	mesh     model.ImportedMesh
	dedup    map[objCorner]uint32
}

type objParser struct {
	file string
	line int

	positions [][3]float32
	normals   [][3]float32
	uvs       [][2]float32

	materialLibs []string
	builders     []*meshBuilder
	byMaterial   map[string]*meshBuilder
	current      *meshBuilder
	group        string

	// reused per face
	corners []objCorner
}

func newOBJParser(file string) *objParser {
	return &objParser{
		file:       file,
		byMaterial: make(map[string]*meshBuilder),
	}
}

func (p *objParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%s:%d: %s", p.file, p.line, fmt.Sprintf(format, args...))
}

func (p *objParser) parse(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		p.line++
		fields := strings.Fields(stripComment(sc.Text()))
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var v [3]float32
			v, err = parseVec3(fields[1:])
			p.positions = append(p.positions, v)
		case "vn":
			var n [3]float32
			n, err = parseVec3(fields[1:])
			p.normals = append(p.normals, common.Normalize3(n))
		case "vt":
			var uv [2]float32
			uv, err = parseUV(fields[1:])
			p.uvs = append(p.uvs, uv)
		case "f":
			err = p.parseFace(fields[1:])
		case "o", "g":
			if len(fields) > 1 {
				p.group = strings.Join(fields[1:], " ")
			}
		case "mtllib":
			p.materialLibs = append(p.materialLibs, fields[1:]...)
		case "usemtl":
			if len(fields) < 2 {
				return p.errorf("usemtl without a name")
			}
			p.current = p.builder(strings.Join(fields[1:], " "))
		}
		if err != nil {
			return p.errorf("%s: %v", fields[0], err)
		}
	}
	return sc.Err()
}

// builder returns the mesh collecting faces of the given material, creating it on first use.
func (p *objParser) builder(material string) *meshBuilder {
	if mb, ok := p.byMaterial[material]; ok {
		return mb
	}
	name := material
	if name == "" {
		name = p.group
	}
	if name == "" {
		name = "default"
	}
	mb := &meshBuilder{
		material: material,
		mesh:     model.ImportedMesh{Name: name},
		dedup:    make(map[objCorner]uint32),
	}
	p.byMaterial[material] = mb
	p.builders = append(p.builders, mb)
	return mb
}

// parseFace triangulates a polygon as a fan around its first corner.
func (p *objParser) parseFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("face needs at least 3 corners, got %d", len(fields))
	}
	if p.current == nil {
		p.current = p.builder("")
	}

	p.corners = p.corners[:0]
	for _, f := range fields {
		c, err := p.parseCorner(f)
		if err != nil {
			return err
		}
		p.corners = append(p.corners, c)
	}

	for i := 1; i+1 < len(p.corners); i++ {
		tri := [3]objCorner{p.corners[0], p.corners[i], p.corners[i+1]}
		var faceNormal [3]float32
		if tri[0].vn < 0 || tri[1].vn < 0 || tri[2].vn < 0 {
			a, b, c := p.positions[tri[0].v], p.positions[tri[1].v], p.positions[tri[2].v]
			faceNormal = common.Normalize3(common.Cross3(common.Sub3(b, a), common.Sub3(c, a)))
		}
		for _, corner := range tri {
			p.emit(corner, faceNormal)
		}
	}
	return nil
}

// emit appends the index of a corner, sharing vertices between corners with identical indices.
// Corners without a normal take the face normal and are never shared.
func (p *objParser) emit(c objCorner, faceNormal [3]float32) {
	mb := p.current
	if c.vn >= 0 {
		if idx, ok := mb.dedup[c]; ok {
			mb.mesh.Indices = append(mb.mesh.Indices, idx)
			return
		}
	}

	v := geometry.GPUVertex{Position: p.positions[c.v], Normal: faceNormal}
	if c.vn >= 0 {
		v.Normal = p.normals[c.vn]
	}
	if c.vt >= 0 {
		v.TexCoord = p.uvs[c.vt]
	}

	idx := uint32(len(mb.mesh.Vertices))
	mb.mesh.Vertices = append(mb.mesh.Vertices, v)
	mb.mesh.Indices = append(mb.mesh.Indices, idx)
	if c.vn >= 0 {
		mb.dedup[c] = idx
	}
}

// parseCorner parses v, v/vt, v//vn or v/vt/vn. Negative indices count back from the end.
func (p *objParser) parseCorner(s string) (objCorner, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return objCorner{}, fmt.Errorf("bad face corner %q", s)
	}

	c := objCorner{v: -1, vt: -1, vn: -1}
	var err error
	if c.v, err = resolveIndex(parts[0], len(p.positions)); err != nil {
		return c, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolveIndex(parts[1], len(p.uvs)); err != nil {
			return c, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = resolveIndex(parts[2], len(p.normals)); err != nil {
			return c, err
		}
	}
	return c, nil
}

func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1, fmt.Errorf("bad index %q", s)
	}
	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return -1, fmt.Errorf("index %d out of range (%d defined)", n, count)
	}
	return idx, nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

func parseFloats(fields []string, out []float32) error {
	if len(fields) < len(out) {
		return fmt.Errorf("expected %d values, got %d", len(out), len(fields))
	}
	for i := range out {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return fmt.Errorf("bad number %q", fields[i])
		}
		out[i] = float32(f)
	}
	return nil
}

func parseVec3(fields []string) ([3]float32, error) {
	var v [3]float32
	err := parseFloats(fields, v[:])
	return v, err
}

// parseUV reads u and v and flips v so it points down the image.
// A missing v defaults to 0 as allowed by the format.
func parseUV(fields []string) ([2]float32, error) {
	var uv [2]float32
	if len(fields) == 1 {
		fields = append(fields, "0")
	}
	if err := parseFloats(fields, uv[:]); err != nil {
		return uv, err
	}
	uv[1] = 1 - uv[1]
	return uv, nil
}
