// Code generated by hand. DO NOT EDIT.

package generated

func generated(x int) int {
	return x
}
