package zframe

import "testing"

func TestBlockStackFindHandlerSkipsLoopBlocks(t *testing.T) {
	var s BlockStack
	s.Push(Block{Kind: BlockTryCatch, StackDepth: 0, HandlerPC: 10})
	s.Push(Block{Kind: BlockLoop, StackDepth: 2, HandlerPC: -1})
	s.Push(Block{Kind: BlockLoop, StackDepth: 4, HandlerPC: -1})

	handler, ok := s.FindHandler()
	if !ok {
		t.Fatal("expected a handler to be found")
	}
	if handler.Kind != BlockTryCatch || handler.HandlerPC != 10 {
		t.Fatalf("expected the try/catch block, got %+v", handler)
	}
	if s.Len() != 0 {
		t.Fatalf("expected all blocks popped during the search, got %d remaining", s.Len())
	}
}

func TestBlockStackFindHandlerEmpty(t *testing.T) {
	var s BlockStack
	if _, ok := s.FindHandler(); ok {
		t.Fatal("expected no handler on an empty block stack")
	}
}

func TestBlockStackSetTop(t *testing.T) {
	var s BlockStack
	s.Push(Block{Kind: BlockTryFinally, StackDepth: 1, HandlerPC: -1})
	s.SetTop(Block{Kind: BlockTryFinally, StackDepth: 1, HandlerPC: 42})

	top, ok := s.Top()
	if !ok || top.HandlerPC != 42 {
		t.Fatalf("expected SetTop to annotate the handler PC, got %+v, ok=%v", top, ok)
	}
}

func TestBlockStackPopEmpty(t *testing.T) {
	var s BlockStack
	if _, err := s.Pop(); err == nil {
		t.Fatal("expected BS_POP on an empty block stack to error")
	}
}
