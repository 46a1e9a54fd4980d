package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/field"
	"github.com/san-kum/chamber/internal/physics"
)

type Style struct {
	Background string
	Grid       string
	Planet     string
	Star       string
	Trail      string
}

func DefaultStyle() Style {
	return Style{
		Background: "#0a0a0a",
		Grid:       "#1f3b4d",
		Planet:     "#00b4ff",
		Star:       "#ffd700",
		Trail:      "#555555",
	}
}

// Scene is one frame in world coordinates. The SVG viewport is the world
// bounds, y pointing down.
type Scene struct {
	Bounds field.Bounds
	Bodies []physics.Body
	Grid   []field.Polyline
	Trails [][]dynamo.Vec2
	Style  Style
}

// SceneToSVG renders grid lines, trails and bodies, in that order.
func SceneToSVG(sc Scene) string {
	if sc.Style == (Style{}) {
		sc.Style = DefaultStyle()
	}
	b := sc.Bounds
	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="%g %g %g %g">
<rect x="%g" y="%g" width="%g" height="%g" fill="%s"/>
`, b.Width(), b.Height(), b.MinX, b.MinY, b.Width(), b.Height(),
		b.MinX, b.MinY, b.Width(), b.Height(), sc.Style.Background)

	if len(sc.Grid) > 0 {
		fmt.Fprintf(&sb, `<g fill="none" stroke="%s" stroke-width="1">`+"\n", sc.Style.Grid)
		for _, line := range sc.Grid {
			writePath(&sb, line.Points, 0)
		}
		sb.WriteString("</g>\n")
	}

	if len(sc.Trails) > 0 {
		// A jump longer than half the world is a wrap, not motion.
		maxJump := min(b.Width(), b.Height()) / 2
		fmt.Fprintf(&sb, `<g fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.6">`+"\n", sc.Style.Trail)
		for _, trail := range sc.Trails {
			writePath(&sb, trail, maxJump)
		}
		sb.WriteString("</g>\n")
	}

	for _, body := range sc.Bodies {
		color := sc.Style.Planet
		if body.Kind == physics.Star {
			color = sc.Style.Star
		}
		fmt.Fprintf(&sb, `<circle cx="%.2f" cy="%.2f" r="%g" fill="%s"/>`+"\n",
			body.Pos.X, body.Pos.Y, body.Radius, color)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// writePath emits pts as one path, starting a new subpath wherever
// consecutive points are further apart than maxJump. maxJump <= 0 never
// breaks.
func writePath(sb *strings.Builder, pts []dynamo.Vec2, maxJump float64) {
	if len(pts) < 2 {
		return
	}
	sb.WriteString(`<path d="`)
	for i, p := range pts {
		switch {
		case i == 0:
			fmt.Fprintf(sb, "M%.1f,%.1f", p.X, p.Y)
		case maxJump > 0 && dynamo.Distance(p, pts[i-1]) > maxJump:
			fmt.Fprintf(sb, " M%.1f,%.1f", p.X, p.Y)
		default:
			fmt.Fprintf(sb, " L%.1f,%.1f", p.X, p.Y)
		}
	}
	sb.WriteString(`"/>` + "\n")
}

func WriteSVG(w io.Writer, sc Scene) error {
	_, err := io.WriteString(w, SceneToSVG(sc))
	return err
}
