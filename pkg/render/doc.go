// Package render converts rendered graph drawings between output formats.
//
// [ToPDF] and [ToPNG] turn SVG into PDF or PNG with the external
// rsvg-convert tool from librsvg. When the tool is missing they fail with
// [ErrNoConverter].
//
//	svg, _ := nodelink.RenderSVG(ctx, dot)
//	png, err := render.ToPNG(svg, 2.0)
//
// The [nodelink] subpackage produces the SVG.
package render
