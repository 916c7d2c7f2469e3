// Code generated by hand. DO NOT EDIT.

package a

func generated(x int) int {
	return x // want "last use of 'x'"
}
