package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"conspire/engine"
)

func TestConspiracyStringIsEmptyForANilCounter(t *testing.T) {
	assert.Equal(t, "", ConspiracyString(nil))
}

func TestConspiracyStringIsEmptyForAnAllZeroCounter(t *testing.T) {
	c := engine.NewConspiracyCounter(100, 5, engine.PieceScoreEval(0))
	assert.Equal(t, "", ConspiracyString(&c))
}

func TestConspiracyStringRendersNonZeroBuckets(t *testing.T) {
	c := engine.NewConspiracyCounter(100, 3, engine.PieceScoreEval(0))
	c.UpBuckets[0] = engine.Count(1)
	c.UpBuckets[2] = engine.UnreachableValue
	c.DownBuckets[1] = engine.Count(2)

	got := ConspiracyString(&c)
	assert.Equal(t, "up:1,0,U down:0,2,0", got)
}

func TestConspiracyStringTreatsASingleUnreachableBucketAsNonZero(t *testing.T) {
	c := engine.NewConspiracyCounter(100, 3, engine.PieceScoreEval(0))
	c.UpBuckets[1] = engine.UnreachableValue

	assert.NotEqual(t, "", ConspiracyString(&c))
}
