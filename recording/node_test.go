package recording

import "testing"

func TestDisplayListCloseChunk(t *testing.T) {
	dl := NewDisplayList()
	dl.Append(RectOp{})
	dl.Append(OvalOp{})
	dl.CloseChunk(false, -1)

	if len(dl.Chunks) != 1 {
		t.Fatalf("len(Chunks) = %d, want 1", len(dl.Chunks))
	}
	c := dl.Chunks[0]
	if c.BeginOp != 0 || c.EndOp != 2 {
		t.Errorf("chunk op range = [%d,%d), want [0,2)", c.BeginOp, c.EndOp)
	}
	if c.HasProjectionReceiver() {
		t.Error("chunk with index -1 should report no projection receiver")
	}
}

func TestDisplayListMultipleChunks(t *testing.T) {
	dl := NewDisplayList()
	dl.Append(RectOp{})
	dl.CloseChunk(false, -1)
	dl.Append(OvalOp{})
	dl.AppendChild(RenderNodeOp{Node: 0})
	dl.CloseChunk(true, 0)

	if len(dl.Chunks) != 2 {
		t.Fatalf("len(Chunks) = %d, want 2", len(dl.Chunks))
	}
	second := dl.Chunks[1]
	if second.BeginOp != 1 || second.EndOp != 2 {
		t.Errorf("second chunk op range = [%d,%d), want [1,2)", second.BeginOp, second.EndOp)
	}
	if second.BeginChild != 0 || second.EndChild != 1 {
		t.Errorf("second chunk child range = [%d,%d), want [0,1)", second.BeginChild, second.EndChild)
	}
	if !second.HasProjectionReceiver() {
		t.Error("second chunk should have a projection receiver")
	}
}

func TestRenderNodeHasDisplayList(t *testing.T) {
	n := &RenderNode{}
	if n.HasDisplayList() {
		t.Error("node without a DisplayList should report false")
	}
	n.DisplayList = NewDisplayList()
	if !n.HasDisplayList() {
		t.Error("node with a DisplayList should report true")
	}
}
