package util

import (
	"sync"
	"testing"
)

func TestUniqueQueueCoalesces(t *testing.T) {
	q := NewUniqueQueue[string, int]()

	if !q.Enqueue("a", 1) {
		t.Error("primeira inserção de a deveria retornar true")
	}
	if !q.Enqueue("b", 2) {
		t.Error("primeira inserção de b deveria retornar true")
	}
	if q.Enqueue("a", 10) {
		t.Error("chave repetida deveria retornar false")
	}
	if q.Len() != 2 {
		t.Fatalf("quer 2 itens, veio %d", q.Len())
	}

	key, value, ok := q.Dequeue()
	if !ok || key != "a" || value != 10 {
		t.Errorf("primeiro item: quer a=10, veio %s=%d (%t)", key, value, ok)
	}
	key, value, ok = q.Dequeue()
	if !ok || key != "b" || value != 2 {
		t.Errorf("segundo item: quer b=2, veio %s=%d (%t)", key, value, ok)
	}
	if _, _, ok := q.Dequeue(); ok {
		t.Error("fila vazia deveria retornar false")
	}
}

func TestUniqueQueueReinsertAfterDequeue(t *testing.T) {
	q := NewUniqueQueue[string, int]()
	q.Enqueue("a", 1)
	q.Dequeue()

	if !q.Enqueue("a", 2) {
		t.Error("depois do Dequeue a chave deveria poder entrar de novo")
	}
	_, value, _ := q.Dequeue()
	if value != 2 {
		t.Errorf("quer 2, veio %d", value)
	}
}

func TestUniqueQueueConcurrentEnqueue(t *testing.T) {
	q := NewUniqueQueue[int, int]()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Enqueue(i, i)
			}
		}()
	}
	wg.Wait()

	if q.Len() != 100 {
		t.Fatalf("quer 100 chaves únicas, veio %d", q.Len())
	}
	seen := make(map[int]bool)
	for {
		key, _, ok := q.Dequeue()
		if !ok {
			break
		}
		if seen[key] {
			t.Fatalf("chave duplicada na fila: %d", key)
		}
		seen[key] = true
	}
}
