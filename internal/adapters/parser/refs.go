package parser

import (
	"regexp"
	"strings"

	"go.trai.ch/tome/internal/core/domain"
)

var (
	// :doc:`guide` and :ref:`Install <install>`.
	roleRe = regexp.MustCompile(":([\\w-]+):`([^`]+)`")
	// {doc}`guide` in Markdown.
	mystRoleRe = regexp.MustCompile("\\{([\\w-]+)\\}`([^`]+)`")
	// (install)= in Markdown.
	mystLabelRe = regexp.MustCompile(`^\(([^()\s]+)\)=\s*$`)
)

func extractCrossRefs(raw string, lineOffset int) []domain.CrossRef {
	return extractRoles(raw, lineOffset, roleRe)
}

func extractRoles(raw string, lineOffset int, patterns ...*regexp.Regexp) []domain.CrossRef {
	var refs []domain.CrossRef
	n := 0
	for line := range strings.SplitSeq(raw, "\n") {
		n++
		for _, re := range patterns {
			for _, m := range re.FindAllStringSubmatch(line, -1) {
				refs = append(refs, domain.CrossRef{
					Role:   m[1],
					Target: domain.LinkTarget(m[2]),
					Line:   n + lineOffset,
				})
			}
		}
	}
	return refs
}
