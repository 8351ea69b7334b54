package rules

import "testing"

func assert[T comparable](t *testing.T, expected, got T, msg string) {
	if got != expected {
		t.Fatalf("%s: expected %v, got %v", msg, expected, got)
	}
}

func TestTagTables(t *testing.T) {
	assert(t, true, Void("br"), "br is void")
	assert(t, true, Void("img"), "img is void")
	assert(t, false, Void("div"), "div is not void")

	assert(t, true, RawText("script"), "script is raw text")
	assert(t, true, RawText("title"), "title is raw text")
	assert(t, false, RawText("p"), "p is not raw text")

	assert(t, true, WhitespaceSignificant("pre"), "pre is significant")
	assert(t, true, WhitespaceSignificant("textarea"), "textarea is significant")
	assert(t, false, WhitespaceSignificant("title"), "title is not significant")

	assert(t, true, Inline("span"), "span is inline")
	assert(t, true, Inline("b"), "b is inline")
	assert(t, false, Inline("div"), "div is not inline")
	assert(t, false, Inline("p"), "p is not inline")
}

func TestBooleanAttr(t *testing.T) {
	assert(t, true, BooleanAttr("checked"), "checked")
	assert(t, true, BooleanAttr("disabled"), "disabled")
	assert(t, true, BooleanAttr("allowfullscreen"), "allowfullscreen")
	assert(t, false, BooleanAttr("value"), "value")
	assert(t, false, BooleanAttr("class"), "class")
}

func TestSafeToEmpty(t *testing.T) {
	assert(t, true, SafeToEmpty("class"), "class")
	assert(t, true, SafeToEmpty("id"), "id")
	assert(t, true, SafeToEmpty("onclick"), "event handlers")
	assert(t, true, SafeToEmpty("value"), "value")
	assert(t, false, SafeToEmpty("alt"), "alt carries meaning when empty")
	assert(t, false, SafeToEmpty("src"), "src")
}

func TestRedundant(t *testing.T) {
	assert(t, true, Redundant("script", "type", "text/javascript"), "script type")
	assert(t, true, Redundant("script", "language", "javascript"), "script language")
	assert(t, true, Redundant("style", "type", "text/css"), "style type")
	assert(t, true, Redundant("link", "type", "text/css"), "link type")
	assert(t, true, Redundant("form", "method", "get"), "form method")
	assert(t, true, Redundant("input", "type", "text"), "input type")
	assert(t, false, Redundant("input", "type", "checkbox"), "non-default input type")
	assert(t, false, Redundant("div", "type", "text"), "unknown tag")
}

func TestURLAttr(t *testing.T) {
	assert(t, true, URLAttr("a", "href"), "a href")
	assert(t, true, URLAttr("img", "src"), "img src")
	assert(t, true, URLAttr("video", "poster"), "video poster")
	assert(t, true, URLAttr("form", "action"), "form action")
	assert(t, false, URLAttr("div", "action"), "action elsewhere")
	assert(t, true, URLAttr("object", "data"), "object data")
	assert(t, false, URLAttr("div", "data"), "data elsewhere")
	assert(t, false, URLAttr("p", "title"), "not a url attribute")
}
