package core

import (
	"fmt"
	"strings"
)

// Locale selects the display language of a Printer.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleZH Locale = "zh"
)

// ParseLocale converts a locale name, accepting region suffixes like "zh_CN".
func ParseLocale(s string) (Locale, error) {
	l := strings.ToLower(s)
	switch {
	case l == "", strings.HasPrefix(l, "en"):
		return LocaleEN, nil
	case strings.HasPrefix(l, "zh"):
		return LocaleZH, nil
	}
	return LocaleEN, fmt.Errorf("unknown locale %q", s)
}

// Labels maps canonical names to display text. Missing entries fall back to
// the canonical name.
type Labels struct {
	Sections map[SectionKind]string
	Fields   map[string]string
	Text     map[string]string
}

// Section returns the heading for k.
func (l *Labels) Section(k SectionKind) string {
	if s, ok := l.Sections[k]; ok {
		return s
	}
	return string(k)
}

// Field returns the display label for a field name.
func (l *Labels) Field(name string) string {
	if s, ok := l.Fields[name]; ok {
		return s
	}
	return name
}

// T translates a fixed string such as a placeholder or note.
func (l *Labels) T(s string) string {
	if t, ok := l.Text[s]; ok {
		return t
	}
	return s
}

// LabelsFor returns the labels of loc.
func LabelsFor(loc Locale) *Labels {
	if loc == LocaleZH {
		return zhLabels
	}
	return enLabels
}

var enLabels = &Labels{
	Sections: map[SectionKind]string{
		SectionBasic: "Basic properties",
		SectionEXIF:  "EXIF",
		SectionPDF:   "PDF",
		SectionWord:  "Word",
		SectionTags:  "Tags",
	},
	Fields: map[string]string{
		"FileName":       "File name",
		"LastModifiedBy": "Last modified by",
		"LastPrinted":    "Last printed",
		"PageCount":      "Pages",
	},
	Text: map[string]string{
		"file":      "File",
		"category":  "Category",
		"processed": "Processed",
		"succeeded": "Succeeded",
		"failed":    "Failed",
	},
}

var zhLabels = &Labels{
	Sections: map[SectionKind]string{
		SectionBasic: "基本属性",
		SectionEXIF:  "EXIF信息",
		SectionPDF:   "PDF信息",
		SectionWord:  "Word信息",
		SectionTags:  "标签",
	},
	Fields: map[string]string{
		"FileName":       "文件名",
		"Path":           "路径",
		"Size":           "大小",
		"Created":        "创建时间",
		"Modified":       "修改时间",
		"Accessed":       "访问时间",
		"Attributes":     "属性",
		"Permissions":    "权限",
		"Owner":          "所有者",
		"Group":          "组",
		"Format":         "格式",
		"PageCount":      "页数",
		"Title":          "标题",
		"Subject":        "主题",
		"Author":         "作者",
		"Category":       "类别",
		"Keywords":       "关键词",
		"Comments":       "备注",
		"LastModifiedBy": "最后修改者",
		"Revision":       "修订号",
		"LastPrinted":    "最后打印时间",
		"Paragraphs":     "段落数",
		"Tables":         "表格数",
		"Status":         "状态",
	},
	Text: map[string]string{
		ValueNone:           "无",
		NoteNoEXIF:          "无EXIF信息",
		NoteDOCUnsupported:  "旧版 .doc 文件的详细属性需要 Word 自动化支持",
		NoteUnsupportedType: "不支持提取此类文件的元数据",
		"file":              "文件",
		"category":          "类型",
		"processed":         "已处理",
		"succeeded":         "成功",
		"failed":            "失败",
		MessageStripped:     "元数据已清除",
		MessageRead:         "属性已读取",
		"EXIF present":      "有EXIF信息",
		"unreadable":        "无法读取",
	},
}
