// Package pipeline implements the article rendering stages:
//   - Markdown preprocessing (line ending and BOM normalization)
//   - Markdown to HTML fragment conversion via goldmark, with heading ids
//     assigned by the anchor rule
//   - relative URL rewriting so a fragment resolves from any page
//   - document assembly from the article template and stylesheet
//
// File discovery and writing are handled by the root md2blog package.
package pipeline
