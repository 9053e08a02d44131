package mesh

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"autorig/internal/domain"
)

// Data holds the vertex positions and named groups of a mesh. Vertex indices
// are zero-based. A vertex belongs to every group that was active when its
// line was read; OBJ exporters emit group statements ahead of each object's
// vertex block, which is what makes groups usable as named selection sets.
type Data struct {
	Name     string
	Vertices []domain.Vector3
	Groups   map[string][]int
}

// Load reads and decodes the OBJ file at path, returning the mesh and its
// content fingerprint. The mesh name is the file base name without extension.
func Load(path string) (*Data, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	d, err := Decode(bytes.NewReader(content), name)
	if err != nil {
		return nil, "", err
	}
	return d, Fingerprint(content), nil
}

// Decode parses OBJ text from r. Vertex (`v`) lines must carry at least
// three numeric components; extra components (the optional w) are ignored.
// `g` and `o` lines switch the active groups. Everything else is skipped.
func Decode(r io.Reader, name string) (*Data, error) {
	d := &Data{Name: name, Groups: make(map[string][]int)}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var active []string
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj %s line %d: vertex needs x y z", name, line)
			}
			var c [3]float32
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("obj %s line %d: %w", name, line, err)
				}
				c[i] = float32(v)
			}
			idx := len(d.Vertices)
			d.Vertices = append(d.Vertices, domain.Vec3(c[0], c[1], c[2]))
			for _, g := range active {
				d.Groups[g] = append(d.Groups[g], idx)
			}
		case "g", "o":
			if len(fields) == 1 {
				active = []string{"default"}
			} else {
				active = fields[1:]
			}
		default:
			// f, vn, vt, s, usemtl, mtllib: irrelevant to placement
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("obj %s: %w", name, err)
	}
	return d, nil
}
