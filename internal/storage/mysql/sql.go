package mysql

// -----------------------------------------------------------------------------
// BOOKINGS
// -----------------------------------------------------------------------------

const insertBookingSQL = `
INSERT INTO bookings
  (subject_type, subject_id, requester_id, start_date, end_date, rooms, pickup_location, phone, whatsapp, status)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const bookingColumns = `
  id, subject_type, subject_id, requester_id, start_date, end_date,
  rooms, pickup_location, phone, whatsapp, status, created_at, updated_at`

const getBookingSQL = `SELECT` + bookingColumns + `
FROM bookings WHERE id = ?`

const listBookingsByRequesterSQL = `SELECT` + bookingColumns + `
FROM bookings
WHERE requester_id = ?
ORDER BY created_at DESC, id DESC`

const listAllBookingsSQL = `SELECT` + bookingColumns + `
FROM bookings
ORDER BY created_at DESC, id DESC`

const updateBookingStatusSQL = `
UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`

// -----------------------------------------------------------------------------
// TOUR REQUESTS
// -----------------------------------------------------------------------------

const insertTourRequestSQL = `
INSERT INTO tour_requests
  (requester_id, arrival_date, departure_date, group_size, interests, budget_min, budget_max, phone, whatsapp, notes, status)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const tourRequestColumns = `
  id, requester_id, arrival_date, departure_date, group_size, interests,
  budget_min, budget_max, phone, whatsapp, notes, status, created_at, updated_at`

const getTourRequestSQL = `SELECT` + tourRequestColumns + `
FROM tour_requests WHERE id = ?`

const listTourRequestsByStatusSQL = `SELECT` + tourRequestColumns + `
FROM tour_requests
WHERE status = ?
ORDER BY created_at DESC, id DESC`

const listAllTourRequestsSQL = `SELECT` + tourRequestColumns + `
FROM tour_requests
ORDER BY created_at DESC, id DESC`

const updateTourRequestStatusSQL = `
UPDATE tour_requests SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`

// -----------------------------------------------------------------------------
// RATINGS
// -----------------------------------------------------------------------------

// The UNIQUE KEY on (user_id, vehicle_id) turns the insert into an atomic
// upsert: concurrent submissions for the same pair resolve last-write-wins
// with no duplicate row.
const upsertRatingSQL = `
INSERT INTO ratings (vehicle_id, user_id, rating, review)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  rating     = VALUES(rating),
  review     = VALUES(review),
  updated_at = CURRENT_TIMESTAMP
`

const ratingColumns = `
  id, vehicle_id, user_id, rating, review, created_at, updated_at`

const getRatingSQL = `SELECT` + ratingColumns + `
FROM ratings WHERE user_id = ? AND vehicle_id = ?`

const listRatingsSQL = `SELECT` + ratingColumns + `
FROM ratings
WHERE vehicle_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?`

// Mean and count over the vehicle's full rating set; recomputed fresh on
// every read.
const ratingSummarySQL = `
SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM ratings WHERE vehicle_id = ?
`

const deleteRatingSQL = `
DELETE FROM ratings WHERE user_id = ? AND vehicle_id = ?
`
