// Package rules holds the static HTML knowledge the minifier relies on:
// which elements are void, which contain raw text, where whitespace matters,
// and which attributes can be collapsed, emptied or dropped.
package rules

import "strings"

var voidTags = map[string]struct{}{
	"area":   {},
	"base":   {},
	"br":     {},
	"col":    {},
	"embed":  {},
	"hr":     {},
	"img":    {},
	"input":  {},
	"link":   {},
	"meta":   {},
	"param":  {},
	"source": {},
	"track":  {},
	"wbr":    {},
}

var rawTextTags = map[string]struct{}{
	"script":   {},
	"style":    {},
	"textarea": {},
	"title":    {},
}

var whitespaceSignificantTags = map[string]struct{}{
	"pre":      {},
	"textarea": {},
}

// Inline-level elements: whitespace adjacent to their tags separates words,
// so the collapser must keep a space there instead of trimming it.
var inlineTags = map[string]struct{}{
	"a": {}, "abbr": {}, "acronym": {}, "b": {}, "bdi": {}, "bdo": {},
	"big": {}, "br": {}, "button": {}, "cite": {}, "code": {}, "dfn": {},
	"em": {}, "i": {}, "img": {}, "input": {}, "kbd": {}, "label": {},
	"map": {}, "mark": {}, "object": {}, "q": {}, "ruby": {}, "s": {},
	"samp": {}, "select": {}, "small": {}, "span": {}, "strike": {},
	"strong": {}, "sub": {}, "sup": {}, "textarea": {}, "tt": {}, "u": {},
	"var": {}, "wbr": {},
}

var booleanAttrs = map[string]struct{}{
	"allowfullscreen": {}, "async": {}, "autofocus": {}, "autoplay": {},
	"checked": {}, "compact": {}, "controls": {}, "declare": {},
	"default": {}, "defaultchecked": {}, "defaultmuted": {},
	"defaultselected": {}, "defer": {}, "disabled": {},
	"formnovalidate": {}, "hidden": {}, "inert": {}, "ismap": {},
	"itemscope": {}, "loop": {}, "multiple": {}, "muted": {}, "nohref": {},
	"noresize": {}, "noshade": {}, "novalidate": {}, "nowrap": {},
	"open": {}, "readonly": {}, "required": {}, "reversed": {},
	"scoped": {}, "seamless": {}, "selected": {}, "sortable": {},
	"truespeed": {}, "typemustmatch": {},
}

// Attributes whose empty value carries no meaning and can be dropped
// together with the attribute.
var safeToEmptyAttrs = map[string]struct{}{
	"class": {}, "id": {}, "style": {}, "title": {}, "lang": {}, "dir": {},
	"action": {}, "value": {},
}

// redundantAttrs maps tag -> attribute -> default value implied by the tag
// itself. Such an attribute restates what the element already means and can
// be removed without changing semantics.
var redundantAttrs = map[string]map[string]string{
	"script": {
		"language": "javascript",
		"type":     "text/javascript",
	},
	"style": {"type": "text/css"},
	"link":  {"type": "text/css"},
	"form":  {"method": "get"},
	"input": {"type": "text"},
	"button": {
		"type": "submit",
	},
	"area": {"shape": "rect"},
}

// urlAttrs maps attributes that carry a URL. An empty tag set means the
// attribute is URL-bearing on any element.
var urlAttrs = map[string]map[string]struct{}{
	"href":       nil,
	"src":        nil,
	"cite":       nil,
	"poster":     nil,
	"background": nil,
	"usemap":     nil,
	"formaction": nil,
	"action":     {"form": {}},
	"data":       {"object": {}},
}

func Void(tag string) bool {
	_, ok := voidTags[tag]
	return ok
}

func RawText(tag string) bool {
	_, ok := rawTextTags[tag]
	return ok
}

func WhitespaceSignificant(tag string) bool {
	_, ok := whitespaceSignificantTags[tag]
	return ok
}

func Inline(tag string) bool {
	_, ok := inlineTags[tag]
	return ok
}

func BooleanAttr(name string) bool {
	_, ok := booleanAttrs[name]
	return ok
}

func SafeToEmpty(name string) bool {
	if strings.HasPrefix(name, "on") {
		return true
	}

	_, ok := safeToEmptyAttrs[name]
	return ok
}

// Redundant reports whether an attribute's value equals the default the tag
// already implies. Tag, attribute and value are expected lower-cased.
func Redundant(tag, attr, value string) bool {
	attrs, ok := redundantAttrs[tag]
	if !ok {
		return false
	}

	def, ok := attrs[attr]
	return ok && def == strings.TrimSpace(value)
}

// URLAttr reports whether the attribute holds a URL on the given tag.
func URLAttr(tag, attr string) bool {
	tags, ok := urlAttrs[attr]
	if !ok {
		return false
	}
	if tags == nil {
		return true
	}

	_, ok = tags[tag]
	return ok
}
