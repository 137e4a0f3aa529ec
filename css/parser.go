// Package css extracts rules and declarations from stylesheets. Only what
// affects pagination geometry is interpreted by callers, everything else is
// kept as raw text.
package css

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Rule is a ruleset with its selectors and declarations.
type Rule struct {
	Selectors  []string
	Properties map[string]string
}

type Stylesheet struct {
	Rules   []Rule
	Imports []string
}

// Parser parses CSS stylesheets into rules.
type Parser struct {
	log *zap.Logger
}

func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css")}
}

// Parse parses stylesheet text. Media queries are flattened, their rules
// apply unconditionally, other at-rule blocks are skipped.
func (p *Parser) Parse(data []byte) *Stylesheet {
	sheet := &Stylesheet{}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return sheet
		case css.AtRuleGrammar:
			if string(data) == "@import" {
				if url := importURL(parser.Values()); url != "" {
					sheet.Imports = append(sheet.Imports, url)
				}
			}
		case css.BeginAtRuleGrammar:
			if string(data) != "@media" && string(data) != "@supports" {
				skipBlock(parser)
			}
		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar:
			rule := Rule{Selectors: selectors(data, parser.Values())}
			if gt == css.BeginRulesetGrammar {
				rule.Properties = declarations(parser)
			}
			if len(rule.Selectors) > 0 && len(rule.Properties) > 0 {
				sheet.Rules = append(sheet.Rules, rule)
			}
		}
	}
}

// ParseInline parses declarations of a style attribute.
func (p *Parser) ParseInline(style string) map[string]string {
	props := make(map[string]string)
	parser := css.NewParser(parse.NewInputString(style), true)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return props
		case css.DeclarationGrammar:
			props[strings.ToLower(string(data))] = value(parser.Values())
		}
	}
}

func declarations(parser *css.Parser) map[string]string {
	props := make(map[string]string)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return props
		case css.DeclarationGrammar:
			props[strings.ToLower(string(data))] = value(parser.Values())
		}
	}
}

func value(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.Write(t.Data)
	}
	return strings.ToLower(strings.TrimSpace(sb.String()))
}

func selectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}
	var out []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func skipBlock(parser *css.Parser) {
	for depth := 1; depth > 0; {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// importURL handles @import "url", @import url("url") and @import url(url).
func importURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := strings.TrimSuffix(strings.TrimPrefix(string(t.Data), "url("), ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// IsVerticalWritingMode reports whether writing-mode value lays lines out
// vertically.
func IsVerticalWritingMode(v string) bool {
	switch v {
	case "vertical-rl", "vertical-lr", "tb-rl", "tb", "sideways-rl", "sideways-lr":
		return true
	}
	return false
}
