package usecase_test

import (
	"sync"
	"testing"

	"github.com/soat-kiosk/lanchonete/internal/usecase"
)

func TestPedidoGuard_TryAcquire(t *testing.T) {
	guard := usecase.NewPedidoGuard(newMockPedidoGateway(t))

	gw, ok := guard.TryAcquire()
	if !ok || gw == nil {
		t.Fatal("free guard must be acquirable")
	}

	if _, ok := guard.TryAcquire(); ok {
		t.Fatal("held guard must not be acquirable")
	}

	guard.Release()
	if _, ok := guard.TryAcquire(); !ok {
		t.Fatal("released guard must be acquirable again")
	}
	guard.Release()
}

func TestPedidoGuard_SerializesCallers(t *testing.T) {
	guard := usecase.NewPedidoGuard(newMockPedidoGateway(t))

	var active, maxActive int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			guard.Acquire()
			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()

			mu.Lock()
			active--
			mu.Unlock()
			guard.Release()
		}()
	}
	wg.Wait()

	if maxActive != 1 {
		t.Fatalf("expected exclusive access, saw %d concurrent holders", maxActive)
	}
}
