package service

import (
	"strings"

	"PortfolioMandala/internal/model"
)

// Classifier 市场类别分类器：对标题/slug/事件slug 做关键词子串匹配。
// 类别表顺序即优先级（多个类别同时命中时取先声明者），构建后只读
type Classifier struct {
	categories []model.Category
}

// NewClassifier 创建分类器。categories 须为进程启动时固定的有序类别表
func NewClassifier(categories []model.Category) *Classifier {
	return &Classifier{categories: categories}
}

// Categorize 返回首个命中关键词的类别名；全部未命中（含空输入）返回 other
func (c *Classifier) Categorize(title, slug, eventSlug string) string {
	text := strings.ToLower(title + " " + slug + " " + eventSlug)

	for _, cat := range c.categories {
		for _, keyword := range cat.Keywords {
			if strings.Contains(text, keyword) {
				return cat.Name
			}
		}
	}
	return model.CategoryOther
}

// CategorizeActivity 按活动记录的三段文本分类
func (c *Classifier) CategorizeActivity(trade *model.TradeActivity) string {
	return c.Categorize(trade.Title, trade.Slug, trade.EventSlug)
}
