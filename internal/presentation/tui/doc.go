// Package tui holds the terminal presentation of switchyard: the banner,
// the stage headers, the interactive prompts and the markdown tree view.
package tui
