package render

// hoverLinkGain brightens the links of the hovered node
const hoverLinkGain = 1.6

// linkPass draws every visible link as a line scaled by weight
type linkPass struct{}

func (linkPass) Render(ctx *Context, s Surface) {
	st := &ctx.Style
	k := ctx.Transform.K
	for _, l := range ctx.Links {
		si, ok := ctx.NodeIndex(l.Source)
		if !ok {
			continue
		}
		ti, ok := ctx.NodeIndex(l.Target)
		if !ok || si == ti {
			continue
		}
		if !st.LinkVisible(l.Weight, ctx.MaxWeight) {
			continue
		}
		col := st.LinkColor
		if ctx.Hover != "" && (l.Source == ctx.Hover || l.Target == ctx.Hover) {
			col = Scale(col, hoverLinkGain)
		}
		s.Line(ctx.ScreenX[si], ctx.ScreenY[si], ctx.ScreenX[ti], ctx.ScreenY[ti],
			st.LinkWidthFor(l.Weight)*k, col, st.LinkAlpha)
	}
}

// nodePass draws filled, stroked circles; the hovered node is tinted and outlined in contrast
type nodePass struct{}

func (nodePass) Render(ctx *Context, s Surface) {
	st := &ctx.Style
	width := st.NodeStrokeWidth * ctx.Transform.K
	for i := range ctx.Nodes {
		fill, stroke := ctx.Fill(i), st.NodeStroke
		if ctx.Hover != "" && ctx.Nodes[i].ID == ctx.Hover {
			fill = LerpLab(fill, st.HoverColor, 0.5)
			stroke = Contrast(fill)
		}
		s.Circle(ctx.ScreenX[i], ctx.ScreenY[i], ctx.Radius[i], fill, stroke, width)
	}
}

// labelPass writes node ids right of each node; the hovered label is always shown, last
type labelPass struct{}

func (labelPass) Render(ctx *Context, s Surface) {
	st := &ctx.Style
	hover := -1
	for i := range ctx.Nodes {
		if ctx.Nodes[i].ID == ctx.Hover && ctx.Hover != "" {
			hover = i
			continue
		}
		if st.ShowLabels {
			label(ctx, s, i, st.LabelColor)
		}
	}
	if hover >= 0 {
		label(ctx, s, hover, st.HoverColor)
	}
}

func label(ctx *Context, s Surface, i int, col RGB) {
	r := ctx.Radius[i]
	s.Text(ctx.ScreenX[i]+r+1, ctx.ScreenY[i], ctx.Nodes[i].ID, col, ctx.Style.LabelSize(r))
}

// statusPass writes Frame.Status on the bottom row
type statusPass struct{}

func (statusPass) Render(ctx *Context, s Surface) {
	if ctx.Status == "" || ctx.Height <= 0 {
		return
	}
	s.Text(0, float64(ctx.Height-1), ctx.Status, ctx.Style.LabelColor, 0)
}
