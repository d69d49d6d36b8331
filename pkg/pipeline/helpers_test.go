package pipeline

import "github.com/matzehuels/depmap/pkg/golist"

func golistRunner() golist.Runner {
	return golist.Runner{GoBin: "go-binary-that-does-not-exist"}
}
