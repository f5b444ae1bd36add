// internal/core/usecases/dedupe_service_test.go
package usecases

import (
	"context"
	"testing"

	"smsdedup/internal/core/domain"
	"smsdedup/internal/core/normalize"
	"smsdedup/internal/platform/logx"
	"smsdedup/internal/testutil"
)

func newService(opts normalize.Options, aggressive bool, workers int) *DedupeService {
	return NewDedupeService(NewEngine(opts, aggressive), logx.NewSilent(), workers)
}

func TestDeduplicateBasicPair(t *testing.T) {
	// dos copias del mismo mensaje de agentes distintos más un mensaje
	// diferente: se elimina una copia, sobreviven dos mensajes
	records := []*domain.Record{
		testutil.SMS(0, "1680729606000", "+15551234567", "hello there"),
		testutil.SMS(1, "1680729606000", "5551234567", "hello there"),
		testutil.SMS(2, "1680729606000", "+15551234567", "different message"),
	}

	svc := newService(normalize.DefaultOptions(), false, 1)
	result, err := svc.Deduplicate(context.Background(), records)
	testutil.AssertNoError(t, err, "deduplicate")

	testutil.AssertLen(t, result.Survivors, 2, "two survivors")
	testutil.AssertLen(t, result.Ledger, 1, "one removal")
	testutil.AssertEqual(t, result.Ledger[0].Removed.Index, 1, "later copy removed")
	testutil.AssertEqual(t, result.Ledger[0].Kept.Index, 0, "earlier copy kept")

	count := result.Counts[domain.KindSMS]
	testutil.AssertEqual(t, count.Original, 3, "original count")
	testutil.AssertEqual(t, count.Removed, 1, "removed count")
	testutil.AssertEqual(t, count.Final, 2, "final count")
	testutil.AssertNoError(t, result.Verify(), "count conservation")
}

func TestDeduplicateSurvivorOrder(t *testing.T) {
	records := []*domain.Record{
		testutil.SMS(0, "1680729606000", "+15551111111", "a"),
		testutil.SMS(1, "1680729606000", "+15552222222", "b"),
		testutil.SMS(2, "1680729606000", "+15551111111", "a"),
		testutil.SMS(3, "1680729606000", "+15553333333", "c"),
	}

	svc := newService(normalize.DefaultOptions(), false, 1)
	result, err := svc.Deduplicate(context.Background(), records)
	testutil.AssertNoError(t, err, "deduplicate")

	testutil.AssertLen(t, result.Survivors, 3, "three survivors")
	testutil.AssertEqual(t, result.Survivors[0].Index, 0, "relative order preserved")
	testutil.AssertEqual(t, result.Survivors[1].Index, 1, "relative order preserved")
	testutil.AssertEqual(t, result.Survivors[2].Index, 3, "relative order preserved")
}

func TestDeduplicateTransitiveMerge(t *testing.T) {
	// tres variantes del mismo mensaje donde la igualdad se establece por
	// transitividad vía la copia con protocolo poblado
	opts := normalize.DefaultOptions()
	records := []*domain.Record{
		testutil.SMSFrom(0, "address", "+15551234567", "date", "1680729606000", "body", "hi"),
		testutil.SMS(1, "1680729606000", "+15551234567", "hi"),
		testutil.SMSFrom(2, "address", "5551234567", "date", "1680729606000", "body", "hi"),
	}

	svc := newService(opts, false, 1)
	result, err := svc.Deduplicate(context.Background(), records)
	testutil.AssertNoError(t, err, "deduplicate")

	testutil.AssertLen(t, result.Survivors, 1, "all three collapse")
	testutil.AssertEqual(t, result.Survivors[0].Index, 1, "copy with protocol kept")
	testutil.AssertLen(t, result.Ledger, 2, "two removals")
	// ledger en orden de entrada del eliminado
	testutil.AssertEqual(t, result.Ledger[0].Removed.Index, 0, "ledger ordered by removed index")
	testutil.AssertEqual(t, result.Ledger[1].Removed.Index, 2, "ledger ordered by removed index")
}

func TestDeduplicateAttachmentStripped(t *testing.T) {
	// algunos agentes duplican MMS sin los adjuntos; debe sobrevivir la
	// copia con datos
	records := []*domain.Record{
		testutil.MMS(0, "1680729700000", "+15551234567", "photo", ""),
		testutil.MMS(1, "1680729700000", "+15551234567", "photo", "aGVsbG8="),
	}

	svc := newService(normalize.DefaultOptions(), false, 1)
	result, err := svc.Deduplicate(context.Background(), records)
	testutil.AssertNoError(t, err, "deduplicate")

	testutil.AssertLen(t, result.Survivors, 1, "one survivor")
	testutil.AssertTrue(t, result.Survivors[0].HasData(), "copy with payload kept")
	testutil.AssertEqual(t, result.Ledger[0].Removed.Index, 0, "stripped copy removed")
}

func TestDeduplicateIdempotent(t *testing.T) {
	records := []*domain.Record{
		testutil.SMS(0, "1680729606000", "+15551234567", "hi"),
		testutil.SMS(1, "1680729606000", "5551234567", "hi"),
		testutil.SMS(2, "1680729607000", "+15551234567", "hi again"),
	}

	svc := newService(normalize.DefaultOptions(), false, 1)
	first, err := svc.Deduplicate(context.Background(), records)
	testutil.AssertNoError(t, err, "first pass")

	// reindexar supervivientes como haría una segunda ejecución real
	reindexed := make([]*domain.Record, len(first.Survivors))
	for i, r := range first.Survivors {
		copied := *r
		copied.Index = i
		reindexed[i] = &copied
	}

	second, err := svc.Deduplicate(context.Background(), reindexed)
	testutil.AssertNoError(t, err, "second pass")

	testutil.AssertLen(t, second.Ledger, 0, "second pass removes nothing")
	testutil.AssertFalse(t, second.HasRemovals(), "fixed point reached")
}

func TestDeduplicateNoRecords(t *testing.T) {
	svc := newService(normalize.DefaultOptions(), false, 1)
	result, err := svc.Deduplicate(context.Background(), nil)
	testutil.AssertNoError(t, err, "empty input is not an error")
	testutil.AssertLen(t, result.Survivors, 0, "nothing to keep")
	testutil.AssertFalse(t, result.HasRemovals(), "nothing removed")
}

func TestDeduplicateParallelMatchesSequential(t *testing.T) {
	// la pasada paralela tiene que producir exactamente el mismo resultado
	var records []*domain.Record
	dates := []string{"1680729606000", "1680729607000", "1680729608000"}
	addrs := []string{"+15551111111", "5551111111", "+15552222222"}
	idx := 0
	for _, d := range dates {
		for _, a := range addrs {
			records = append(records, testutil.SMS(idx, d, a, "body for "+d))
			idx++
			records = append(records, testutil.SMS(idx, d, a, "body for "+d))
			idx++
		}
	}

	seq, err := newService(normalize.DefaultOptions(), false, 1).
		Deduplicate(context.Background(), records)
	testutil.AssertNoError(t, err, "sequential pass")

	par, err := newService(normalize.DefaultOptions(), false, 4).
		Deduplicate(context.Background(), records)
	testutil.AssertNoError(t, err, "parallel pass")

	testutil.AssertEqual(t, len(par.Survivors), len(seq.Survivors), "same survivor count")
	testutil.AssertEqual(t, len(par.Ledger), len(seq.Ledger), "same removal count")
	for i := range seq.Ledger {
		testutil.AssertEqual(t, par.Ledger[i].Removed.Index, seq.Ledger[i].Removed.Index,
			"same removals in same order")
		testutil.AssertEqual(t, par.Ledger[i].Kept.Index, seq.Ledger[i].Kept.Index,
			"same keepers")
	}
	for i := range seq.Survivors {
		testutil.AssertEqual(t, par.Survivors[i].Index, seq.Survivors[i].Index,
			"same survivors in same order")
	}
}

func TestDeduplicateAggressiveCrossKind(t *testing.T) {
	records := []*domain.Record{
		testutil.SMS(0, "1680729606000", "+15551234567", "hi"),
		testutil.MMS(1, "1680729606000", "+15559999999", "hi", ""),
	}

	strict, err := newService(normalize.DefaultOptions(), false, 1).
		Deduplicate(context.Background(), records)
	testutil.AssertNoError(t, err, "strict pass")
	testutil.AssertLen(t, strict.Survivors, 2, "strict keeps both kinds")

	aggressive, err := newService(normalize.DefaultOptions(), true, 1).
		Deduplicate(context.Background(), records)
	testutil.AssertNoError(t, err, "aggressive pass")
	testutil.AssertLen(t, aggressive.Survivors, 1, "aggressive collapses across kinds")
}

func TestDeduplicateAggressiveUnknownAddress(t *testing.T) {
	// participantes que canonicalizan a unknown: en modo agresivo no se
	// comparan, así que dos copias con fecha y texto iguales se unen igual
	records := []*domain.Record{
		testutil.SMS(0, "1680729606000", " ", "hello there"),
		testutil.SMS(1, "1680729606000", " ", "hello there"),
	}

	aggressive, err := newService(normalize.DefaultOptions(), true, 1).
		Deduplicate(context.Background(), records)
	testutil.AssertNoError(t, err, "aggressive pass")
	testutil.AssertLen(t, aggressive.Survivors, 1, "copies merge despite unknown participants")
	testutil.AssertLen(t, aggressive.Ledger, 1, "one removal")

	strict, err := newService(normalize.DefaultOptions(), false, 1).
		Deduplicate(context.Background(), records)
	testutil.AssertNoError(t, err, "strict pass")
	testutil.AssertLen(t, strict.Survivors, 2, "strict keeps unknown participants apart")
}

func TestDeduplicateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := []*domain.Record{
		testutil.SMS(0, "1680729606000", "+15551234567", "hi"),
		testutil.SMS(1, "1680729606000", "+15551234567", "hi"),
	}

	_, err := newService(normalize.DefaultOptions(), false, 1).Deduplicate(ctx, records)
	testutil.AssertError(t, err, "cancelled context aborts the pass")
}
