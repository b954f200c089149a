//go:build !windows

package tree

func isHidden(_, name string) bool {
	return isDotName(name)
}
