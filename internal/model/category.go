package model

// CategoryOther 未命中任何关键词时的兜底类别
const CategoryOther = "other"

// Category 固定类别定义：名称、匹配关键词、渲染用三色调色板。
// 顺序即分类优先级（多类别关键词同时出现时取先声明者）
type Category struct {
	Name     string    `mapstructure:"name"`
	Keywords []string  `mapstructure:"keywords"`
	Palette  [3]string `mapstructure:"palette"`
}

// DefaultCategories 类别表（关键词命中市场标题/slug/事件 slug）。
// 调色板为霓虹风格，供 SVG 渲染使用
var DefaultCategories = []Category{
	{
		Name: "politics",
		Keywords: []string{
			"election", "president", "presidential", "vote", "campaign", "senate",
			"congress", "democrat", "republican", "biden", "trump", "harris",
			"political", "governor", "mayor", "legislation", "impeach", "war", "israel",
			"gaza",
		},
		Palette: [3]string{"#FF0040", "#FF3366", "#FF6699"},
	},
	{
		Name: "crypto",
		Keywords: []string{
			"bitcoin", "ethereum", "crypto", "defi", "nft", "btc", "eth",
			"blockchain", "dogecoin", "solana", "polygon", "ada", "xrp",
			"coinbase", "binance", "price", "market-cap", "airdrop",
		},
		Palette: [3]string{"#00FF41", "#33FF66", "#66FF88"},
	},
	{
		Name: "sports",
		Keywords: []string{
			"nfl", "nba", "wnba", "mlb", "nhl", "soccer", "football", "basketball",
			"baseball", "hockey", "olympics", "super-bowl", "world-cup",
			"championship", "playoffs", "wins", "mvp", "team", "us-open",
		},
		Palette: [3]string{"#0080FF", "#3399FF", "#66B3FF"},
	},
	{
		Name: "entertainment",
		Keywords: []string{
			"movie", "tv", "television", "celebrity", "music", "awards", "oscar",
			"netflix", "disney", "streaming", "box-office", "album", "concert",
			"grammy", "emmy", "actor", "actress", "artist", "artists", "rotten-tomatoes",
		},
		Palette: [3]string{"#FF00FF", "#FF33FF", "#FF66FF"},
	},
	{
		Name: "technology",
		Keywords: []string{
			"ai", "artificial-intelligence", "tech", "software", "hardware",
			"innovation", "chatgpt", "openai", "robot", "automation",
			"iphone", "android", "app", "platform", "stock", "ipo", "merger", "earnings", "company", "ceo", "revenue",
			"apple", "google", "microsoft", "tesla", "amazon", "meta",
			"quarterly", "billion", "market-value",
		},
		Palette: [3]string{"#8000FF", "#9933FF", "#B366FF"},
	},
	{
		Name: "economics",
		Keywords: []string{
			"inflation", "gdp", "recession", "interest", "fed", "federal-reserve",
			"rate", "economy", "unemployment", "jobs", "housing", "market",
			"dow", "s&p", "nasdaq",
		},
		Palette: [3]string{"#00FFFF", "#33FFFF", "#66FFFF"},
	},
}

// OtherPalette 兜底类别（other）及未知类别的调色板
var OtherPalette = [3]string{"#FFFFFF", "#CCCCCC", "#999999"}

// PaletteFor 按类别名查调色板，未知类别返回 OtherPalette
func PaletteFor(categories []Category, name string) [3]string {
	for _, c := range categories {
		if c.Name == name {
			return c.Palette
		}
	}
	return OtherPalette
}
