package mysql

const aggregateColumns = `
  product_id, profile,
  overall_rating, ease_of_use_score, feature_score, value_for_money_score,
  positive_sentiment_summary, negative_sentiment_summary,
  total_reviews, positive_count, negative_count, neutral_count,
  avg_polarity, avg_subjectivity,
  ratings, recent_reviews, themes, last_computed_at`

// Row lock on the product key; on a missing row InnoDB takes a gap lock,
// so a concurrent refresh of the same product waits here.
const lockAggregateSQL = `SELECT revision FROM aggregated_reviews WHERE product_id = ? FOR UPDATE`

// Dup-key fallback covers the first insert racing another writer.
const insertAggregateSQL = `
INSERT INTO aggregated_reviews (` + aggregateColumns + `)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  profile                    = VALUES(profile),
  overall_rating             = VALUES(overall_rating),
  ease_of_use_score          = VALUES(ease_of_use_score),
  feature_score              = VALUES(feature_score),
  value_for_money_score      = VALUES(value_for_money_score),
  positive_sentiment_summary = VALUES(positive_sentiment_summary),
  negative_sentiment_summary = VALUES(negative_sentiment_summary),
  total_reviews              = VALUES(total_reviews),
  positive_count             = VALUES(positive_count),
  negative_count             = VALUES(negative_count),
  neutral_count              = VALUES(neutral_count),
  avg_polarity               = VALUES(avg_polarity),
  avg_subjectivity           = VALUES(avg_subjectivity),
  ratings                    = VALUES(ratings),
  recent_reviews             = VALUES(recent_reviews),
  themes                     = VALUES(themes),
  last_computed_at           = VALUES(last_computed_at),
  revision                   = revision + 1
`

const updateAggregateSQL = `
UPDATE aggregated_reviews SET
  profile                    = ?,
  overall_rating             = ?,
  ease_of_use_score          = ?,
  feature_score              = ?,
  value_for_money_score      = ?,
  positive_sentiment_summary = ?,
  negative_sentiment_summary = ?,
  total_reviews              = ?,
  positive_count             = ?,
  negative_count             = ?,
  neutral_count              = ?,
  avg_polarity               = ?,
  avg_subjectivity           = ?,
  ratings                    = ?,
  recent_reviews             = ?,
  themes                     = ?,
  last_computed_at           = ?,
  revision                   = revision + 1
WHERE product_id = ?
`

const getAggregateSQL = `SELECT` + aggregateColumns + `
FROM aggregated_reviews
WHERE product_id = ?
`

const revisionSQL = `SELECT revision FROM aggregated_reviews WHERE product_id = ?`
