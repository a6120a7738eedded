package overpass

import (
	"context"
	"fmt"
	"itinerary-service/internal/domain"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestFinder(srv *httptest.Server, maxRadius int) *HotelFinder {
	f := NewHotelFinder(Config{BaseURL: srv.URL, MaxRadius: maxRadius})
	f.http.Backoff = time.Millisecond
	return f
}

func TestFindNearbyHotels(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if r.URL.Path != "/api/interpreter" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		q := r.PostForm.Get("data")
		if !strings.Contains(q, `node["tourism"="hotel"]`) || !strings.Contains(q, "25.100000,121.500000") {
			t.Errorf("unexpected query %q", q)
		}

		if n == 1 {
			fmt.Fprint(w, `{"elements":[{"type":"node","lat":25.1,"lon":121.5,"tags":{"tourism":"hotel"}}]}`)
			return
		}
		fmt.Fprint(w, `{"elements":[{"type":"node","lat":25.101,"lon":121.502,"tags":{"name":"Grand Hotel","addr:city":"Taipei","addr:street":"Zhongshan N Rd"}}]}`)
	}))
	defer srv.Close()

	f := newTestFinder(srv, 0)
	hotels, err := f.FindNearby(context.Background(), domain.Coordinates{Lat: 25.1, Lon: 121.5}, domain.KindHotel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want 2", calls.Load())
	}
	if len(hotels) != 1 {
		t.Fatalf("expected 1 hotel, got %+v", hotels)
	}
	if hotels[0].Name != "Grand Hotel" || hotels[0].Address != "Taipei Zhongshan N Rd" {
		t.Fatalf("unexpected hotel: %+v", hotels[0])
	}
}

func TestFindNearbyHotelsNoneFound(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"elements":[]}`)
	}))
	defer srv.Close()

	f := newTestFinder(srv, 900)
	hotels, err := f.FindNearby(context.Background(), domain.Coordinates{}, domain.KindHotel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hotels) != 0 {
		t.Fatalf("expected no hotels, got %+v", hotels)
	}
	if calls.Load() != 3 {
		t.Fatalf("calls = %d, want 3", calls.Load())
	}
}

func TestFindNearbyRetriesOverloadedServer(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"elements":[{"type":"node","lat":1,"lon":2,"tags":{"name":"Inn"}}]}`)
	}))
	defer srv.Close()

	f := newTestFinder(srv, 0)
	hotels, err := f.FindNearby(context.Background(), domain.Coordinates{}, domain.KindHotel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hotels) != 1 || hotels[0].Address != "" {
		t.Fatalf("unexpected hotels: %+v", hotels)
	}
}

func TestFindNearbyRejectsRestaurants(t *testing.T) {
	f := NewHotelFinder(Config{BaseURL: "http://127.0.0.1:0"})
	if _, err := f.FindNearby(context.Background(), domain.Coordinates{}, domain.KindRestaurant); err == nil {
		t.Fatal("expected error for unsupported kind")
	}
}
