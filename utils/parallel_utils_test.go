package utils

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Balance: maximum imbalance of one item across buckets
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				histo[pm.GetBucketDimension(np)]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		for n := 64; n < 4000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1]))
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Inverted bucket probe - find bucket that contains index
		for maxIndex := 10; maxIndex < 500; maxIndex++ {
			pm := NewPartitionMap(5, maxIndex)
			for k := 0; k < maxIndex; k++ {
				tryCount, bn, min, max := pm.getBucketWithTryCount(k)
				mmin, mmax := pm.GetBucketRange(bn)
				assert.True(t, k >= min && k < max && min == mmin && max == mmax && tryCount <= 1)
			}
		}
	}
	{ // Local / global index round trip
		pm := NewPartitionMap(4, 37)
		for k := 0; k < 37; k++ {
			kLocal, _, bn := pm.GetLocalK(k)
			assert.Equal(t, k, pm.GetGlobalK(kLocal, bn))
		}
	}
}

func TestMailBox(t *testing.T) {
	// Each thread posts its id+1 to every neighbor, then receives.
	// Total received per thread is the sum over all other threads.
	var (
		NP  = 8
		mb  = NewMailBox[int](NP)
		wg  sync.WaitGroup
		got = make([]int, NP)
	)
	wg.Add(NP)
	for n := 0; n < NP; n++ {
		go func(myThread int) {
			defer wg.Done()
			mb.PostMessageToAll(myThread, myThread+1)
			mb.DeliverMyMessages(myThread)
		}(n)
	}
	wg.Wait()
	for n := 0; n < NP; n++ {
		mb.ReceiveMyMessages(n)
		for _, msg := range mb.ReceiveMsgQs[n].Cells() {
			got[n] += msg
		}
		mb.ClearMyMessages(n)
		assert.Equal(t, 0, len(mb.ReceiveMsgQs[n].Cells()))
	}
	var total int
	for n := 1; n <= NP; n++ {
		total += n
	}
	for n := 0; n < NP; n++ {
		assert.Equal(t, total-(n+1), got[n])
	}
}
