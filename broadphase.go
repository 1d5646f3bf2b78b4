package partition

import (
	"sync"

	"github.com/akmonengine/partition/octree"
)

// Pair is a candidate pair handed from the broad phase to the narrow phase.
type Pair struct {
	BodyA *Body
	BodyB *Body
}

// BroadPhase streams the candidate pairs of the step. Each pair is emitted once.
//
// With the octree, the occupants of every node are paired together, then swept top down
// against the occupants of the descendant nodes whose volume they overlap. Nodes are split
// between workersCount goroutines. The octree must not change until the channel is drained.
func BroadPhase(tree *octree.Octree, workersCount int) <-chan Pair {
	nodes := tree.NodesAtLevel(-1)
	pairsChan := make(chan Pair, workersCount*10)

	var wg sync.WaitGroup
	for _, chunk := range chunks(len(nodes), workersCount) {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for _, node := range nodes[start:end] {
				nodePairs(node, pairsChan)
				sweepDescendants(tree, node, pairsChan)
			}
		}(chunk[0], chunk[1])
	}

	go func() {
		wg.Wait()
		close(pairsChan)
	}()

	return pairsChan
}

// BruteForce streams every pair of bodies.
func BruteForce(bodies []*Body, workersCount int) <-chan Pair {
	pairsChan := make(chan Pair, workersCount*10)

	var wg sync.WaitGroup
	for _, chunk := range chunks(len(bodies), workersCount) {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				for j := i + 1; j < len(bodies); j++ {
					pairsChan <- Pair{BodyA: bodies[i], BodyB: bodies[j]}
				}
			}
		}(chunk[0], chunk[1])
	}

	go func() {
		wg.Wait()
		close(pairsChan)
	}()

	return pairsChan
}

// nodePairs emits all pairs among the occupants of node.
func nodePairs(node *octree.Node, out chan<- Pair) {
	for a := node.First(); a != nil; a = a.OctreeEntry().Next() {
		for b := a.OctreeEntry().Next(); b != nil; b = b.OctreeEntry().Next() {
			out <- Pair{BodyA: a.(*Body), BodyB: b.(*Body)}
		}
	}
}

// sweepDescendants pairs the occupants of origin with the occupants of every descendant
// node they overlap. A child is only descended into when one of the occupants overlaps it.
func sweepDescendants(tree *octree.Octree, origin *octree.Node, out chan<- Pair) {
	if origin.First() == nil {
		return
	}

	stack := []*octree.Node{origin}
	for len(stack) > 0 {
		start := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for i := 0; i < 1<<octree.Dimensions; i++ {
			if !start.HasChild(i) {
				continue
			}
			childCode := octree.ChildCode(start.Code(), i)
			child := tree.FindNode(childCode)
			if child == nil {
				continue
			}
			childBV := octree.ComputeBV(childCode, tree.RootSize())

			overlapping := false
			for a := origin.First(); a != nil; a = a.OctreeEntry().Next() {
				if !a.WorldBV().Overlaps(childBV) {
					continue
				}
				overlapping = true
				for b := child.First(); b != nil; b = b.OctreeEntry().Next() {
					out <- Pair{BodyA: a.(*Body), BodyB: b.(*Body)}
				}
			}
			if overlapping {
				stack = append(stack, child)
			}
		}
	}
}
