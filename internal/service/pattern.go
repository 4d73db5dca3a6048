package service

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"PortfolioMandala/internal/config"
	"PortfolioMandala/internal/model"
)

// PatternGenerator 组合图案渲染器：根据 PortfolioSummary 确定性地产出
// 动画 SVG 文档。布局策略仅由类别数决定（0/1/2/3/4+），环境粒子使用
// 固定种子的独立随机源，同一输入多次渲染产出完全一致
type PatternGenerator struct {
	width       int
	height      int
	centerX     float64
	centerY     float64
	maxRadius   float64
	categories  []model.Category
	ambientSeed int64
}

// NewPatternGenerator 创建渲染器。categories 提供各类别调色板
func NewPatternGenerator(cfg *config.PatternConfig, categories []model.Category) *PatternGenerator {
	minSide := cfg.Width
	if cfg.Height < minSide {
		minSide = cfg.Height
	}
	return &PatternGenerator{
		width:       cfg.Width,
		height:      cfg.Height,
		centerX:     float64(cfg.Width) / 2,
		centerY:     float64(cfg.Height) / 2,
		maxRadius:   float64(minSide)/2 - 50,
		categories:  categories,
		ambientSeed: cfg.AmbientSeed,
	}
}

// Generate 渲染组合图案。无类别数据（含零成交）时走占位图分支，从不报错
func (g *PatternGenerator) Generate(portfolio *model.PortfolioSummary) string {
	if portfolio == nil || len(portfolio.CategoryPercentages) == 0 {
		trader := ""
		if portfolio != nil {
			trader = portfolio.TraderAddress
		}
		return g.emptyPattern(trader)
	}

	shares := portfolio.SortedCategories()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
    <defs>
%s
%s
%s
    </defs>
`, g.width, g.height, g.animatedFilters(), g.gradientDefs(shares), g.animatedPatterns()))

	sb.WriteString(g.animatedBackground())
	for _, el := range g.dynamicGrid(shares) {
		sb.WriteString(el)
	}
	for _, el := range g.fluidVisualization(shares) {
		sb.WriteString(el)
	}
	sb.WriteString(g.volumeDisplay(portfolio))
	for _, el := range g.ambientEffects() {
		sb.WriteString(el)
	}
	sb.WriteString(g.dataBreakdown(shares))
	sb.WriteString("</svg>")
	return sb.String()
}

// paletteFor 查类别调色板
func (g *PatternGenerator) paletteFor(category string) [3]string {
	return model.PaletteFor(g.categories, category)
}

// animatedFilters 霓虹发光/脉冲/流体扰动滤镜定义
func (g *PatternGenerator) animatedFilters() string {
	return `        <filter id="neon-glow" x="-50%" y="-50%" width="200%" height="200%">
            <feGaussianBlur stdDeviation="3" result="coloredBlur">
                <animate attributeName="stdDeviation" values="2;4;2" dur="3s" repeatCount="indefinite"/>
            </feGaussianBlur>
            <feMerge>
                <feMergeNode in="coloredBlur"/>
                <feMergeNode in="SourceGraphic"/>
            </feMerge>
        </filter>
        <filter id="pulse-glow" x="-50%" y="-50%" width="200%" height="200%">
            <feGaussianBlur stdDeviation="2" result="coloredBlur">
                <animate attributeName="stdDeviation" values="1;3;1" dur="2s" repeatCount="indefinite"/>
            </feGaussianBlur>
            <feFlood flood-opacity="0.8" result="flood">
                <animate attributeName="flood-opacity" values="0.3;0.9;0.3" dur="2s" repeatCount="indefinite"/>
            </feFlood>
            <feComposite in="flood" in2="coloredBlur" operator="multiply"/>
            <feMerge>
                <feMergeNode in="coloredBlur"/>
                <feMergeNode in="SourceGraphic"/>
            </feMerge>
        </filter>
        <filter id="fluid-distort" x="-50%" y="-50%" width="200%" height="200%">
            <feTurbulence baseFrequency="0.02" numOctaves="3" result="noise">
                <animate attributeName="baseFrequency" values="0.01;0.03;0.01" dur="8s" repeatCount="indefinite"/>
            </feTurbulence>
            <feDisplacementMap in="SourceGraphic" in2="noise" scale="3"/>
        </filter>
        <filter id="cyber-glow" x="-50%" y="-50%" width="200%" height="200%">
            <feGaussianBlur stdDeviation="1" result="blur"/>
            <feDropShadow dx="0" dy="0" stdDeviation="4" flood-opacity="0.8">
                <animate attributeName="flood-opacity" values="0.4;1;0.4" dur="1.5s" repeatCount="indefinite"/>
            </feDropShadow>
        </filter>
`
}

// gradientDefs 背景渐变 + 每个类别的霓虹渐变与光晕
func (g *PatternGenerator) gradientDefs(shares []model.CategoryShare) string {
	var sb strings.Builder
	sb.WriteString(`        <radialGradient id="matrix-bg" cx="50%" cy="50%" r="70%">
            <stop offset="0%" style="stop-color:#000000;stop-opacity:1" />
            <stop offset="50%" style="stop-color:#001100;stop-opacity:1" />
            <stop offset="100%" style="stop-color:#000000;stop-opacity:1" />
        </radialGradient>
`)
	for _, share := range shares {
		colors := g.paletteFor(share.Name)
		sb.WriteString(fmt.Sprintf(`        <linearGradient id="neon-%s" x1="0%%" y1="0%%" x2="100%%" y2="100%%">
            <stop offset="0%%" style="stop-color:%s;stop-opacity:1" />
            <stop offset="50%%" style="stop-color:%s;stop-opacity:0.8" />
            <stop offset="100%%" style="stop-color:%s;stop-opacity:0.6" />
        </linearGradient>
        <radialGradient id="glow-%s" cx="50%%" cy="50%%" r="50%%">
            <stop offset="0%%" style="stop-color:%s;stop-opacity:0.9" />
            <stop offset="100%%" style="stop-color:%s;stop-opacity:0" />
        </radialGradient>
`, share.Name, colors[0], colors[1], colors[2], share.Name, colors[0], colors[0]))
	}
	return sb.String()
}

// animatedPatterns 流动电路纹理
func (g *PatternGenerator) animatedPatterns() string {
	return `        <pattern id="flowing-circuit" x="0" y="0" width="60" height="60" patternUnits="userSpaceOnUse">
            <rect width="60" height="60" fill="none"/>
            <g opacity="0.4">
                <line x1="0" y1="30" x2="60" y2="30" stroke="rgba(0,255,155,0.6)" stroke-width="1">
                    <animate attributeName="stroke-opacity" values="0.2;0.8;0.2" dur="3s" repeatCount="indefinite"/>
                </line>
                <line x1="30" y1="0" x2="30" y2="60" stroke="rgba(0,255,155,0.6)" stroke-width="1">
                    <animate attributeName="stroke-opacity" values="0.8;0.2;0.8" dur="3s" repeatCount="indefinite"/>
                </line>
                <circle cx="30" cy="30" r="3" fill="rgba(0,255,155,0.4)">
                    <animate attributeName="r" values="2;5;2" dur="2s" repeatCount="indefinite"/>
                    <animate attributeName="fill-opacity" values="0.2;0.8;0.2" dur="2s" repeatCount="indefinite"/>
                </circle>
            </g>
        </pattern>
`
}

// animatedBackground 暗色背景 + 缓慢平移的电路纹理
func (g *PatternGenerator) animatedBackground() string {
	return fmt.Sprintf(`    <rect width="%d" height="%d" fill="url(#matrix-bg)"/>
    <rect width="%d" height="%d" fill="url(#flowing-circuit)" opacity="0.6">
        <animateTransform attributeName="transform" type="translate" values="0,0;-60,0;0,0" dur="20s" repeatCount="indefinite"/>
    </rect>
`, g.width, g.height, g.width, g.height)
}

// dynamicGrid 以首位类别配色绘制呼吸网格线
func (g *PatternGenerator) dynamicGrid(shares []model.CategoryShare) []string {
	var elements []string

	primary := model.CategoryShare{Name: "crypto", Percentage: 100}
	if len(shares) > 0 {
		primary = shares[0]
	}
	colors := g.paletteFor(primary.Name)

	for i := 0; i < g.width; i += 50 {
		elements = append(elements, fmt.Sprintf(`    <line x1="%d" y1="0" x2="%d" y2="%d" stroke="%s" stroke-width="0.5" opacity="0.3">
        <animate attributeName="opacity" values="0.1;0.5;0.1" dur="4s" begin="%.1fs" repeatCount="indefinite"/>
    </line>
`, i, i, g.height, colors[0], float64(i)*0.1))
	}
	for i := 0; i < g.height; i += 50 {
		elements = append(elements, fmt.Sprintf(`    <line x1="0" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="0.5" opacity="0.3">
        <animate attributeName="opacity" values="0.1;0.5;0.1" dur="4s" begin="%.1fs" repeatCount="indefinite"/>
    </line>
`, i, g.width, i, colors[1], float64(i)*0.1))
	}
	return elements
}

// fluidVisualization 主视觉：按类别数选择布局策略
func (g *PatternGenerator) fluidVisualization(shares []model.CategoryShare) []string {
	switch len(shares) {
	case 1:
		return g.singleCategoryFlow(shares[0])
	case 2:
		return g.dualCategoryFlow(shares)
	case 3:
		return g.tripleCategoryFlow(shares)
	default:
		return g.multiCategoryNetwork(shares)
	}
}

// singleCategoryFlow 单类别：正弦调制的螺旋环 x3 + 12 颗环绕粒子
func (g *PatternGenerator) singleCategoryFlow(share model.CategoryShare) []string {
	var elements []string
	colors := g.paletteFor(share.Name)

	const numSpirals = 3
	for spiral := 0; spiral < numSpirals; spiral++ {
		radiusOffset := float64(spiral) * 40
		var points []string
		for t := 0; t < 360; t += 5 {
			angle := radians(float64(t))
			radius := (g.maxRadius - radiusOffset) * (0.6 + 0.4*math.Sin(angle*3))
			x := g.centerX + radius*math.Cos(angle)
			y := g.centerY + radius*math.Sin(angle)
			points = append(points, fmt.Sprintf("%.2f,%.2f", x, y))
		}
		pathData := "M " + strings.Join(points, " L ") + " Z"
		elements = append(elements, fmt.Sprintf(`    <path d="%s" fill="none" stroke="%s" stroke-width="2" opacity="0.7" filter="url(#neon-glow)">
        <animateTransform attributeName="transform" type="rotate" values="0 %.1f %.1f;360 %.1f %.1f" dur="%ds" repeatCount="indefinite"/>
    </path>
`, pathData, colors[spiral%3], g.centerX, g.centerY, g.centerX, g.centerY, 15+spiral*5))
	}

	for i := 0; i < 12; i++ {
		angle := radians(float64(i * 30))
		radius := g.maxRadius * 0.8
		x := g.centerX + radius*math.Cos(angle)
		y := g.centerY + radius*math.Sin(angle)
		elements = append(elements, fmt.Sprintf(`    <circle cx="%.2f" cy="%.2f" r="4" fill="%s" opacity="0.8" filter="url(#pulse-glow)">
        <animateTransform attributeName="transform" type="rotate" values="0 %.1f %.1f;360 %.1f %.1f" dur="20s" repeatCount="indefinite"/>
        <animate attributeName="r" values="2;6;2" dur="3s" repeatCount="indefinite"/>
    </circle>
`, x, y, colors[0], g.centerX, g.centerY, g.centerX, g.centerY))
	}
	return elements
}

// dualCategoryFlow 双类别：两股镜像（180°错位）流动，螺旋数与粒子按占比缩放
func (g *PatternGenerator) dualCategoryFlow(shares []model.CategoryShare) []string {
	var elements []string

	for side := 0; side < 2; side++ {
		share := shares[side]
		colors := g.paletteFor(share.Name)
		flowIntensity := share.Percentage / 100

		spiralCount := int(3 * flowIntensity)
		if spiralCount < 2 {
			spiralCount = 2
		}
		baseAngleOffset := float64(side * 180)
		rotateTo := 360
		if side == 1 {
			rotateTo = -360
		}

		for spiral := 0; spiral < spiralCount; spiral++ {
			var points []string
			for t := 0; t < 360; t += 4 {
				angle := radians(float64(t) + baseAngleOffset)
				radiusVariation := math.Sin(angle*4+float64(spiral)*math.Pi/3) * 0.3 * share.Percentage / 100
				radius := (g.maxRadius * (0.8 - float64(spiral)*0.15)) * (0.6 + 0.4*flowIntensity + radiusVariation)
				x := g.centerX + radius*math.Cos(angle)
				y := g.centerY + radius*math.Sin(angle)
				points = append(points, fmt.Sprintf("%.2f,%.2f", x, y))
			}
			pathData := "M " + strings.Join(points, " L ") + " Z"
			elements = append(elements, fmt.Sprintf(`    <path d="%s" fill="none" stroke="%s" stroke-width="%.2f" opacity="%.2f" filter="url(#neon-glow)">
        <animateTransform attributeName="transform" type="rotate" values="0 %.1f %.1f;%d %.1f %.1f" dur="%ds" repeatCount="indefinite"/>
    </path>
`, pathData, colors[spiral%3], 2+flowIntensity, 0.6*flowIntensity, g.centerX, g.centerY, rotateTo, g.centerX, g.centerY, 12+spiral*3))
		}
	}

	for side := 0; side < 2; side++ {
		share := shares[side]
		colors := g.paletteFor(share.Name)
		particleCount := int(12 * share.Percentage / 100)
		if particleCount < 6 {
			particleCount = 6
		}
		rotateTo := 360
		if side == 1 {
			rotateTo = -360
		}
		particleSize := 3 + share.Percentage/100*3

		for i := 0; i < particleCount; i++ {
			angle := radians(float64(i)*360/float64(particleCount) + float64(side*180))
			radius := g.maxRadius * (0.7 + 0.2*share.Percentage/100)
			x := g.centerX + radius*math.Cos(angle)
			y := g.centerY + radius*math.Sin(angle)
			elements = append(elements, fmt.Sprintf(`    <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" opacity="0.8" filter="url(#pulse-glow)">
        <animateTransform attributeName="transform" type="rotate" values="0 %.1f %.1f;%d %.1f %.1f" dur="%ds" repeatCount="indefinite"/>
        <animate attributeName="r" values="%.2f;%.2f;%.2f" dur="3s" repeatCount="indefinite"/>
    </circle>
`, x, y, particleSize, colors[0], g.centerX, g.centerY, rotateTo, g.centerX, g.centerY, 18+side*2, particleSize-1, particleSize+2, particleSize-1))
		}
	}
	return elements
}

// tripleCategoryFlow 三类别：120° 间隔的三股流动，双波项叠加产生类别间相位干涉
func (g *PatternGenerator) tripleCategoryFlow(shares []model.CategoryShare) []string {
	var elements []string

	for i := 0; i < 3; i++ {
		share := shares[i]
		colors := g.paletteFor(share.Name)
		flowIntensity := share.Percentage / 100
		baseAngleOffset := float64(i * 120)

		spiralCount := int(2 * flowIntensity)
		if spiralCount < 1 {
			spiralCount = 1
		}

		for spiral := 0; spiral < spiralCount; spiral++ {
			var points []string
			for t := 0; t < 360; t += 5 {
				angle := radians(float64(t) + baseAngleOffset)
				wave1 := math.Sin(angle*3+float64(spiral)*math.Pi/2) * 0.2
				wave2 := math.Cos(angle*2+float64(i)*math.Pi/3) * 0.15
				radiusVariation := (wave1 + wave2) * share.Percentage / 100
				radius := (g.maxRadius * (0.75 - float64(spiral)*0.1)) * (0.5 + 0.5*flowIntensity + radiusVariation)
				x := g.centerX + radius*math.Cos(angle)
				y := g.centerY + radius*math.Sin(angle)
				points = append(points, fmt.Sprintf("%.2f,%.2f", x, y))
			}
			pathData := "M " + strings.Join(points, " L ") + " Z"
			elements = append(elements, fmt.Sprintf(`    <path d="%s" fill="none" stroke="%s" stroke-width="%.2f" opacity="%.2f" filter="url(#neon-glow)">
        <animateTransform attributeName="transform" type="rotate" values="0 %.1f %.1f;360 %.1f %.1f" dur="%ds" repeatCount="indefinite"/>
    </path>
`, pathData, colors[spiral%3], 1.5+flowIntensity*1.5, 0.5+0.3*flowIntensity, g.centerX, g.centerY, g.centerX, g.centerY, 15+i*2+spiral*3))
		}
	}

	for i := 0; i < 3; i++ {
		share := shares[i]
		colors := g.paletteFor(share.Name)
		particleCount := int(8 * share.Percentage / 100)
		if particleCount < 4 {
			particleCount = 4
		}
		baseAngle := float64(i * 120)
		particleSize := 2.5 + share.Percentage/100*2.5

		for j := 0; j < particleCount; j++ {
			angle := radians(baseAngle + float64(j)*120/float64(particleCount))
			orbitRadius := g.maxRadius * (0.6 + 0.3*share.Percentage/100)
			x := g.centerX + orbitRadius*math.Cos(angle)
			y := g.centerY + orbitRadius*math.Sin(angle)
			elements = append(elements, fmt.Sprintf(`    <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" opacity="0.7" filter="url(#pulse-glow)">
        <animateTransform attributeName="transform" type="rotate" values="0 %.1f %.1f;360 %.1f %.1f" dur="%ds" repeatCount="indefinite"/>
        <animate attributeName="r" values="%.2f;%.2f;%.2f" dur="4s" repeatCount="indefinite"/>
    </circle>
`, x, y, particleSize, colors[0], g.centerX, g.centerY, g.centerX, g.centerY, 20+i*3, particleSize-0.5, particleSize+1.5, particleSize-0.5))
		}
	}
	return elements
}

// multiCategoryNetwork 4+ 类别：每类别一个节点，节点半径按占比三档线性插值，
// 节点两两连线、线宽随两端占比之和
func (g *PatternGenerator) multiCategoryNetwork(shares []model.CategoryShare) []string {
	var elements []string

	type node struct {
		x, y float64
	}
	angleStep := 360 / float64(len(shares))
	nodes := make([]node, 0, len(shares))

	for i, share := range shares {
		angle := radians(float64(i) * angleStep)
		radius := g.maxRadius * 0.7
		x := g.centerX + radius*math.Cos(angle)
		y := g.centerY + radius*math.Sin(angle)
		colors := g.paletteFor(share.Name)

		// 三档缩放：<10% 4-8，10-30% 8-16，>=30% 16-28
		var baseSize float64
		switch {
		case share.Percentage < 10:
			baseSize = 4 + share.Percentage/10*4
		case share.Percentage < 30:
			baseSize = 8 + (share.Percentage-10)/20*8
		default:
			baseSize = 16 + (share.Percentage-30)/70*12
		}
		// 脉动幅度压缩，保持档位间的大小差异可读
		pulseRange := baseSize * 0.15
		if pulseRange < 1 {
			pulseRange = 1
		}

		nodes = append(nodes, node{x: x, y: y})
		elements = append(elements, fmt.Sprintf(`    <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" opacity="0.8" filter="url(#cyber-glow)">
        <animate attributeName="r" values="%.2f;%.2f;%.2f" dur="4s" repeatCount="indefinite"/>
    </circle>
`, x, y, baseSize, colors[0], baseSize-pulseRange, baseSize+pulseRange, baseSize-pulseRange))
	}

	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			combined := shares[i].Percentage + shares[j].Percentage
			lineWidth := combined / 50
			if lineWidth < 0.5 {
				lineWidth = 0.5
			}
			if lineWidth > 3 {
				lineWidth = 3
			}
			elements = append(elements, fmt.Sprintf(`    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="rgba(255,255,255,0.3)" stroke-width="%.2f" opacity="0.5">
        <animate attributeName="opacity" values="0.2;0.7;0.2" dur="6s" repeatCount="indefinite"/>
    </line>
`, nodes[i].x, nodes[i].y, nodes[j].x, nodes[j].y, lineWidth))
		}
	}
	return elements
}

// volumeDisplay 左下角总成交额面板
func (g *PatternGenerator) volumeDisplay(portfolio *model.PortfolioSummary) string {
	volumeX := 30
	volumeY := g.height - 50
	return fmt.Sprintf(`    <g transform="translate(%d, %d)">
        <rect x="-15" y="-25" width="150" height="40" fill="rgba(0,0,0,0.7)" stroke="rgba(255,255,255,0.2)" stroke-width="1" rx="5"/>
        <text x="0" y="-10" font-family="'Segoe UI', Arial, sans-serif" font-size="9" font-weight="600" fill="rgba(255,255,255,0.9)">TOTAL VOLUME</text>
        <text x="0" y="2" font-family="'Segoe UI', Arial, sans-serif" font-size="14" font-weight="700" fill="rgba(0,255,155,0.9)" filter="url(#neon-glow)">$%s</text>
        <text x="0" y="12" font-family="'Segoe UI', Arial, sans-serif" font-size="8" fill="rgba(255,255,255,0.7)">%d trades executed</text>
    </g>
`, volumeX, volumeY, formatThousands(portfolio.TotalVolume), portfolio.TradeCount)
}

// ambientColors 环境粒子用中性配色，避免与类别色混淆
var ambientColors = []string{
	"rgba(255,255,255,0.6)",
	"rgba(200,200,255,0.5)",
	"rgba(255,255,200,0.4)",
	"rgba(200,255,255,0.5)",
}

// ambientEffects 环境漂浮粒子。使用固定种子的独立随机源（不是进程级全局
// 随机源），保证同一输入重复渲染逐字节一致
func (g *PatternGenerator) ambientEffects() []string {
	var elements []string
	rng := rand.New(rand.NewSource(g.ambientSeed))

	for i := 0; i < 15; i++ {
		x := randInt(rng, 50, g.width-50)
		y := randInt(rng, 50, g.height-50)

		// 避开中心主视觉与左下角成交额面板
		if (math.Abs(float64(x)-g.centerX) < 100 && math.Abs(float64(y)-g.centerY) < 100) ||
			(x < 150 && y > g.height-100) {
			continue
		}

		color := ambientColors[rng.Intn(len(ambientColors))]
		size := 1.5 + rng.Float64()*2
		duration := 4 + rng.Float64()*4
		dx := randInt(rng, -15, 15)
		dy := randInt(rng, -15, 15)

		elements = append(elements, fmt.Sprintf(`    <circle cx="%d" cy="%d" r="%.2f" fill="%s" opacity="0.4" filter="url(#neon-glow)">
        <animate attributeName="opacity" values="0.2;0.6;0.2" dur="%.2fs" repeatCount="indefinite"/>
        <animate attributeName="r" values="%.2f;%.2f;%.2f" dur="%.2fs" repeatCount="indefinite"/>
        <animateTransform attributeName="transform" type="translate" values="0,0;%d,%d;0,0" dur="%.2fs" repeatCount="indefinite"/>
    </circle>
`, x, y, size, color, duration, size, size*1.3, size, duration, dx, dy, duration*2))
	}
	return elements
}

// dataBreakdown 右上角类别占比面板，高度随类别数
func (g *PatternGenerator) dataBreakdown(shares []model.CategoryShare) string {
	breakdownX := g.width - 140
	breakdownY := 30

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`    <g transform="translate(%d, %d)">
`, breakdownX, breakdownY))
	sb.WriteString(fmt.Sprintf(`        <rect x="-10" y="-10" width="130" height="%d" fill="rgba(0,0,0,0.7)" stroke="rgba(255,255,255,0.2)" stroke-width="1" rx="5"/>
        <text x="0" y="5" font-family="monospace" font-size="10" fill="rgba(255,255,255,0.9)">BREAKDOWN</text>
`, len(shares)*18+20))

	yOffset := 20
	for _, share := range shares {
		colors := g.paletteFor(share.Name)
		label := strings.ToUpper(share.Name)
		if len(label) > 8 {
			label = label[:8]
		}
		sb.WriteString(fmt.Sprintf(`        <circle cx="5" cy="%d" r="3" fill="%s" opacity="0.8"/>
        <text x="15" y="%d" font-family="monospace" font-size="8" fill="rgba(255,255,255,0.8)">%s</text>
        <text x="100" y="%d" font-family="monospace" font-size="8" fill="rgba(255,255,255,0.6)" text-anchor="end">%.1f%%</text>
`, yOffset, colors[0], yOffset+3, label, yOffset+3, share.Percentage))
		yOffset += 18
	}
	sb.WriteString("    </g>\n")
	return sb.String()
}

// emptyPattern 无数据占位图：同心虚线环 + 截断地址
func (g *PatternGenerator) emptyPattern(traderAddress string) string {
	return fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
    <defs>
        <radialGradient id="empty-bg" cx="50%%" cy="50%%" r="70%%">
            <stop offset="0%%" style="stop-color:#0a0a0a;stop-opacity:1" />
            <stop offset="100%%" style="stop-color:#1a1a2e;stop-opacity:1" />
        </radialGradient>
        <filter id="empty-glow" x="-50%%" y="-50%%" width="200%%" height="200%%">
            <feGaussianBlur stdDeviation="2" result="coloredBlur"/>
            <feMerge>
                <feMergeNode in="coloredBlur"/>
                <feMergeNode in="SourceGraphic"/>
            </feMerge>
        </filter>
    </defs>
    <rect width="%d" height="%d" fill="url(#empty-bg)"/>
    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="rgba(255,255,255,0.1)" stroke-width="2" stroke-dasharray="10,5" filter="url(#empty-glow)"/>
    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="rgba(255,255,255,0.05)" stroke-width="1"/>
    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="rgba(255,255,255,0.03)" stroke-width="1"/>
    <text x="%.1f" y="%.1f" text-anchor="middle" font-family="'Segoe UI', Arial, sans-serif" font-size="14" font-weight="300" fill="rgba(255,255,255,0.8)" filter="url(#empty-glow)">AWAITING COSMIC DATA</text>
    <text x="%.1f" y="%.1f" text-anchor="middle" font-family="'Courier New', monospace" font-size="10" fill="rgba(255,255,255,0.5)">%s</text>
    <text x="%.1f" y="%.1f" text-anchor="middle" font-family="'Segoe UI', Arial, sans-serif" font-size="9" fill="rgba(255,255,255,0.3)">No trading activity detected</text>
</svg>`,
		g.width, g.height,
		g.width, g.height,
		g.centerX, g.centerY, g.maxRadius,
		g.centerX, g.centerY, g.maxRadius*0.7,
		g.centerX, g.centerY, g.maxRadius*0.4,
		g.centerX, g.centerY-15,
		g.centerX, g.centerY+5, truncateAddress(traderAddress),
		g.centerX, g.centerY+25)
}

// truncateAddress 地址截断显示：0x12345678...abcdef
func truncateAddress(addr string) string {
	if len(addr) < 14 {
		return addr
	}
	return addr[:8] + "..." + addr[len(addr)-6:]
}

// formatThousands 整数金额千分位显示（$1,234,567）
func formatThousands(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

// randInt [min, max] 闭区间随机整数
func randInt(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
