package dag_test

import (
	"fmt"

	"github.com/matzehuels/graphkit/pkg/dag"
	"github.com/matzehuels/graphkit/pkg/graph"
)

func ExampleDAG_AddEdge() {
	// app -> lib -> core; closing the loop is refused
	d, _ := dag.New[string](graph.NewString(graph.NewType(graph.Directed())))
	for _, v := range []string{"app", "lib", "core"} {
		_, _ = d.AddVertexWithID(v)
	}
	_, _ = d.AddEdge("app", "lib")
	_, _ = d.AddEdge("lib", "core")

	_, err := d.AddEdge("core", "app")
	fmt.Println("Edges:", d.EdgeCount())
	fmt.Println("Rejected:", err != nil)
	// Output:
	// Edges: 2
	// Rejected: true
}

func ExampleDAG_TopologicalOrder() {
	d, _ := dag.New[string](graph.NewString(graph.NewType(graph.Directed())))
	for _, v := range []string{"shared", "app", "cli"} {
		_, _ = d.AddVertexWithID(v)
	}
	_, _ = d.AddEdge("app", "shared")
	_, _ = d.AddEdge("cli", "shared")

	order, _ := d.TopologicalOrder()
	fmt.Println(order)
	// Output:
	// [app cli shared]
}

func ExampleDAG_Descendants() {
	d, _ := dag.New[string](graph.NewString(graph.NewType(graph.Directed())))
	for _, v := range []string{"app", "auth", "cache", "crypto"} {
		_, _ = d.AddVertexWithID(v)
	}
	_, _ = d.AddEdge("app", "auth")
	_, _ = d.AddEdge("app", "cache")
	_, _ = d.AddEdge("auth", "crypto")

	down, _ := d.Descendants("app")
	up, _ := d.Ancestors("crypto")
	fmt.Println("Below app:", down)
	fmt.Println("Above crypto:", up)
	// Output:
	// Below app: [auth cache crypto]
	// Above crypto: [auth app]
}
